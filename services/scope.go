package services

import (
	"wms-finance/authz"
	"wms-finance/models"
	"wms-finance/query"
)

// Scope predicates keep the records an identity's warehouse and customer
// lists allow.

func WarehouseScope(identity *models.User) query.Predicate[models.Warehouse] {
	return func(w models.Warehouse) bool {
		return authz.CanAccessWarehouse(identity, w.ID.String())
	}
}

func CustomerScope(identity *models.User) query.Predicate[models.Customer] {
	return func(c models.Customer) bool {
		return authz.CanAccessCustomer(identity, c.ID.String())
	}
}

func OrderScope(identity *models.User) query.Predicate[models.Order] {
	return func(o models.Order) bool {
		return authz.CanAccessWarehouse(identity, o.WarehouseID.String()) &&
			authz.CanAccessCustomer(identity, o.CustomerID.String())
	}
}

func BillScope(identity *models.User) query.Predicate[models.Bill] {
	return func(b models.Bill) bool {
		return authz.CanAccessWarehouse(identity, b.WarehouseID.String()) &&
			authz.CanAccessCustomer(identity, b.CustomerID.String())
	}
}
