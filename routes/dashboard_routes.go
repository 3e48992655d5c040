package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/controllers"
)

func SetupDashboardRoutes(api fiber.Router, a *app.App) {
	dashboardController := controllers.NewDashboardController(a.Dashboard, a.Loader)
	api.Get("/dashboard", dashboardController.GetDashboard)
}
