package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
)

func SetupBillRoutes(api fiber.Router, a *app.App) {
	billController := controllers.NewBillController(a)
	can := guard(a, authz.ModuleBill)

	bills := api.Group("/bills")
	bills.Get("/summary", can(authz.ActionRead), billController.Summary)
	bills.Get("/export", can(authz.ActionExport), billController.Export)
	bills.Post("/:id/send", can(authz.ActionUpdate), billController.Send)
	bills.Post("/:id/pay", can(authz.ActionUpdate), billController.Pay)
	resourceRoutes(bills, billController.ResourceController, can)
}
