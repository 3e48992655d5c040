package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
	"wms-finance/middleware"
)

func SetupFeeConfigRoutes(api fiber.Router, a *app.App) {
	feeController := controllers.NewFeeConfigController(a)
	fees := api.Group("/fee-configs")
	fees.Get("/summary", middleware.CheckPermission(a.Authz, authz.ModuleFee, authz.ActionRead), feeController.Summary)
	resourceRoutes(fees, feeController.ResourceController, guard(a, authz.ModuleFee))
}
