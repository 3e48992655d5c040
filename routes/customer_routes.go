package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
	"wms-finance/middleware"
)

func SetupCustomerRoutes(api fiber.Router, a *app.App) {
	customerController := controllers.NewCustomerController(a)
	customers := api.Group("/customers")
	customers.Post("/import", middleware.CheckPermission(a.Authz, authz.ModuleCustomer, authz.ActionCreate), customerController.CreateCustomerFromExcel)
	resourceRoutes(customers, customerController.ResourceController, guard(a, authz.ModuleCustomer))
}
