package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
)

// SetupOrderRoutes lets any signed-in user read orders; changes need the
// order permissions.
func SetupOrderRoutes(api fiber.Router, a *app.App) {
	orderController := controllers.NewOrderController(a)
	orders := api.Group("/orders")
	can := func(action string) fiber.Handler {
		if action == authz.ActionRead {
			return func(ctx *fiber.Ctx) error { return ctx.Next() }
		}
		return guard(a, authz.ModuleOrder)(action)
	}
	orders.Get("/summary", orderController.Summary)
	resourceRoutes(orders, orderController.ResourceController, can)
}
