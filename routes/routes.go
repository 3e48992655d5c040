package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"wms-finance/app"
	"wms-finance/authz"
	"wms-finance/controllers"
	"wms-finance/middleware"
	"wms-finance/repositories"
)

// NewServer builds the fiber app with every route of the API mounted
// under MAIN_ROUTES.
func NewServer(a *app.App) *fiber.App {
	server := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    16 * 1024 * 1024,
	})
	server.Use(middleware.RequestLogger(a.Logger))
	server.Use(recover.New())
	a.Config.SetupCORS(server)

	api := server.Group(a.Config.MainRoutes)
	SetupAuthRoutes(api, a)
	protected := api.Group("", middleware.AuthMiddleware(a.Auth, a.Logger))
	SetupMenuRoutes(protected, a)
	SetupDashboardRoutes(protected, a)
	SetupUserRoutes(protected, a)
	SetupWarehouseRoutes(protected, a)
	SetupCustomerRoutes(protected, a)
	SetupOrderRoutes(protected, a)
	SetupFeeConfigRoutes(protected, a)
	SetupBillRoutes(protected, a)
	return server
}

// ErrorHandler renders errors in the response envelope.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return ctx.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"data":    nil,
	})
}

// guard returns the permission middleware for an action on module.
func guard(a *app.App, module string) func(action string) fiber.Handler {
	return func(action string) fiber.Handler {
		return middleware.CheckPermission(a.Authz, module, action)
	}
}

func resourceRoutes[T any, I any, P repositories.Patch[T]](api fiber.Router, c *controllers.ResourceController[T, I, P], can func(action string) fiber.Handler) {
	api.Get("/", can(authz.ActionRead), c.List)
	api.Get("/grid", can(authz.ActionRead), c.Grid)
	api.Post("/", can(authz.ActionCreate), c.Create)
	api.Get("/:id", can(authz.ActionRead), c.Get)
	api.Put("/:id", can(authz.ActionUpdate), c.Update)
	api.Delete("/:id", can(authz.ActionDelete), c.Delete)
}
