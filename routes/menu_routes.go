package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/controllers"
)

func SetupMenuRoutes(api fiber.Router, a *app.App) {
	menuController := controllers.NewMenuController(a.Menus)
	api.Get("/menus", menuController.GetMenuUser)
}
