package routes

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/app"
	"wms-finance/controllers"
	"wms-finance/middleware"
)

func SetupAuthRoutes(api fiber.Router, a *app.App) {
	authController := controllers.NewAuthController(a.Auth, a.Authz, a.Config, a.Loader, a.Logger)
	authMiddleware := middleware.AuthMiddleware(a.Auth, a.Logger)

	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/logout", authMiddleware, authController.Logout)
	auth.Get("/me", authMiddleware, authController.Me)
	auth.Get("/can", authMiddleware, authController.Can)
}
