package services

import (
	"context"
	"time"

	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/types"
)

type OrderService struct {
	repo repositories.Collection[models.Order]
	refs references
	now  func() time.Time
}

func NewOrderService(repo repositories.Collection[models.Order], customers repositories.Collection[models.Customer], warehouses repositories.Collection[models.Warehouse]) *OrderService {
	return &OrderService{repo: repo, refs: references{customers: customers, warehouses: warehouses}, now: time.Now}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id types.SnowflakeID) (models.Order, bool, error) {
	return s.repo.Get(ctx, id)
}

// Create copies the customer and warehouse names onto the order and
// stamps CompletedAt for orders created as completed.
func (s *OrderService) Create(ctx context.Context, o models.Order) (models.Order, error) {
	cName, wName, err := s.refs.names(ctx, &o.CustomerID, &o.WarehouseID)
	if err != nil {
		return o, err
	}
	o.CustomerName, o.WarehouseName = *cName, *wName
	if o.Status == models.OrderCompleted && o.CompletedAt == nil {
		now := s.now()
		o.CompletedAt = &now
	}
	return s.repo.Create(ctx, o)
}

// Update refreshes the copied names only when the matching id changes.
func (s *OrderService) Update(ctx context.Context, id types.SnowflakeID, patch models.OrderPatch) (models.Order, bool, error) {
	cName, wName, err := s.refs.names(ctx, patch.CustomerID, patch.WarehouseID)
	if err != nil {
		return models.Order{}, false, err
	}
	patch.CustomerName, patch.WarehouseName = cName, wName
	if patch.Status != nil && *patch.Status == models.OrderCompleted && patch.CompletedAt == nil {
		current, found, err := s.repo.Get(ctx, id)
		if err != nil || !found {
			return current, found, err
		}
		if current.CompletedAt == nil {
			now := s.now()
			patch.CompletedAt = &now
		}
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *OrderService) Delete(ctx context.Context, id types.SnowflakeID) (bool, error) {
	return s.repo.Delete(ctx, id)
}
