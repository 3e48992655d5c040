package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
)

func SetupUserRoutes(api fiber.Router, a *app.App) {
	resourceRoutes(api.Group("/users"), controllers.NewUserController(a), guard(a, authz.ModuleUser))
}
