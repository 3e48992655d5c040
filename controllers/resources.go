package controllers

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/models"
	"wms-finance/query"
	"wms-finance/services"
)

type UserController = ResourceController[models.User, services.UserInput, models.UserPatch]

func NewUserController(a *app.App) *UserController {
	return &UserController{
		Name:     "User",
		Service:  a.Users,
		Columns:  services.UserColumns(a.Lang),
		Loader:   a.Loader,
		Validate: a.Validate,
	}
}

type WarehouseController = ResourceController[models.Warehouse, models.Warehouse, models.WarehousePatch]

func NewWarehouseController(a *app.App) *WarehouseController {
	return &WarehouseController{
		Name:     "Warehouse",
		Service:  a.Warehouses,
		Columns:  services.WarehouseColumns(a.Lang),
		Loader:   a.Loader,
		Validate: a.Validate,
		Scope:    services.WarehouseScope,
		Filters: func(ctx *fiber.Ctx) ([]query.Predicate[models.Warehouse], error) {
			return []query.Predicate[models.Warehouse]{
				query.Equal(func(w models.Warehouse) models.Status { return w.Status }, models.Status(ctx.Query("status"))),
			}, nil
		},
	}
}

type FeeConfigController struct {
	*ResourceController[models.FeeConfig, models.FeeConfig, models.FeeConfigPatch]
}

func NewFeeConfigController(a *app.App) *FeeConfigController {
	return &FeeConfigController{&ResourceController[models.FeeConfig, models.FeeConfig, models.FeeConfigPatch]{
		Name:     "Fee config",
		Service:  a.Fees,
		Columns:  services.FeeConfigColumns(a.Lang),
		Loader:   a.Loader,
		Validate: a.Validate,
		Filters: func(ctx *fiber.Ctx) ([]query.Predicate[models.FeeConfig], error) {
			return []query.Predicate[models.FeeConfig]{
				query.Equal(func(f models.FeeConfig) models.FeeType { return f.Type }, models.FeeType(ctx.Query("type"))),
			}, nil
		},
	}}
}

// Summary counts configs per fee type.
func (c *FeeConfigController) Summary(ctx *fiber.Ctx) error {
	fees, err := c.records(ctx, c.sortFromQuery(ctx))
	if err != nil {
		return err
	}
	return ok(ctx, "Fee summary", query.SummarizeFees(fees))
}

type OrderController struct {
	*ResourceController[models.Order, models.Order, models.OrderPatch]
}

func NewOrderController(a *app.App) *OrderController {
	return &OrderController{&ResourceController[models.Order, models.Order, models.OrderPatch]{
		Name:          "Order",
		Service:       a.Orders,
		Columns:       services.OrderColumns(a.Lang),
		Loader:        a.Loader,
		Validate:      a.Validate,
		Scope:         services.OrderScope,
		ScopeOnCreate: true,
		Filters: func(ctx *fiber.Ctx) ([]query.Predicate[models.Order], error) {
			f := query.OrderFilter{
				OrderType: models.OrderType(ctx.Query("orderType")),
				Status:    models.OrderStatus(ctx.Query("status")),
			}
			var err error
			if f.CustomerID, err = parseOptionalID(ctx, "customerId"); err != nil {
				return nil, err
			}
			if f.WarehouseID, err = parseOptionalID(ctx, "warehouseId"); err != nil {
				return nil, err
			}
			return f.Predicates(), nil
		},
	}}
}

func (c *OrderController) Summary(ctx *fiber.Ctx) error {
	orders, err := c.records(ctx, c.sortFromQuery(ctx))
	if err != nil {
		return err
	}
	return ok(ctx, "Order summary", query.SummarizeOrders(orders))
}
