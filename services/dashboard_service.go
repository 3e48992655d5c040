package services

import (
	"context"

	"wms-finance/authz"
	"wms-finance/models"
	"wms-finance/query"
	"wms-finance/repositories"
)

type DashboardService struct {
	bills      repositories.Collection[models.Bill]
	orders     repositories.Collection[models.Order]
	customers  repositories.Collection[models.Customer]
	warehouses repositories.Collection[models.Warehouse]
	authz      *authz.Authorizer
}

func NewDashboardService(bills repositories.Collection[models.Bill], orders repositories.Collection[models.Order], customers repositories.Collection[models.Customer], warehouses repositories.Collection[models.Warehouse], authorizer *authz.Authorizer) *DashboardService {
	return &DashboardService{bills: bills, orders: orders, customers: customers, warehouses: warehouses, authz: authorizer}
}

// Build computes the dashboard over what identity may see. Bills,
// customers and warehouses count only when identity may read that module,
// the same check their list endpoints make.
func (s *DashboardService) Build(ctx context.Context, identity *models.User) (query.Dashboard, error) {
	var (
		bills      []models.Bill
		customers  []models.Customer
		warehouses []models.Warehouse
		err        error
	)
	if s.authz.Check(identity, authz.ModuleBill, authz.ActionRead) {
		if bills, err = s.bills.List(ctx); err != nil {
			return query.Dashboard{}, err
		}
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return query.Dashboard{}, err
	}
	if s.authz.Check(identity, authz.ModuleCustomer, authz.ActionRead) {
		if customers, err = s.customers.List(ctx); err != nil {
			return query.Dashboard{}, err
		}
	}
	if s.authz.Check(identity, authz.ModuleWarehouse, authz.ActionRead) {
		if warehouses, err = s.warehouses.List(ctx); err != nil {
			return query.Dashboard{}, err
		}
	}
	return query.BuildDashboard(
		query.Filter(bills, BillScope(identity)),
		query.Filter(orders, OrderScope(identity)),
		query.Filter(customers, CustomerScope(identity)),
		query.Filter(warehouses, WarehouseScope(identity)),
	), nil
}
