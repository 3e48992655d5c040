package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
)

func SetupWarehouseRoutes(api fiber.Router, a *app.App) {
	resourceRoutes(api.Group("/warehouses"), controllers.NewWarehouseController(a), guard(a, authz.ModuleWarehouse))
}
