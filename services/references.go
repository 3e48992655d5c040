package services

import (
	"context"

	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/types"
)

// references resolves the customer and warehouse names that orders and
// bills carry alongside their ids.
type references struct {
	customers  repositories.Collection[models.Customer]
	warehouses repositories.Collection[models.Warehouse]
}

func (r references) customer(ctx context.Context, id types.SnowflakeID) (models.Customer, error) {
	c, found, err := r.customers.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if !found {
		return c, ErrUnknownReference
	}
	return c, nil
}

func (r references) warehouse(ctx context.Context, id types.SnowflakeID) (models.Warehouse, error) {
	w, found, err := r.warehouses.Get(ctx, id)
	if err != nil {
		return w, err
	}
	if !found {
		return w, ErrUnknownReference
	}
	return w, nil
}

// names resolves only the ids that are set.
func (r references) names(ctx context.Context, customerID, warehouseID *types.SnowflakeID) (customerName, warehouseName *string, err error) {
	if customerID != nil {
		c, err := r.customer(ctx, *customerID)
		if err != nil {
			return nil, nil, err
		}
		customerName = &c.Name
	}
	if warehouseID != nil {
		w, err := r.warehouse(ctx, *warehouseID)
		if err != nil {
			return nil, nil, err
		}
		warehouseName = &w.Name
	}
	return customerName, warehouseName, nil
}
