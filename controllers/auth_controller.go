package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wms-finance/authz"
	"wms-finance/config"
	"wms-finance/middleware"
	"wms-finance/repositories"
	"wms-finance/services"
)

type AuthController struct {
	Auth   *services.AuthService
	Authz  *authz.Authorizer
	Config *config.Config
	Loader *repositories.Loader
	Logger *zap.Logger
}

func NewAuthController(auth *services.AuthService, a *authz.Authorizer, cfg *config.Config, loader *repositories.Loader, logger *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Authz: a, Config: cfg, Loader: loader, Logger: logger}
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input loginInput
	if err := ctx.BodyParser(&input); err != nil || input.Username == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Username and password are required",
		})
	}
	// Accounts are fixtures until the first load finishes.
	if err := c.Loader.Wait(ctx.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data is not available")
	}

	result, err := c.Auth.Login(ctx.UserContext(), input.Username, input.Password)
	if err != nil {
		return serviceError(err)
	}

	ctx.Cookie(c.Config.TokenCookie(result.Token))
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    result,
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID := middleware.SessionID(ctx)
	if err := c.Auth.Logout(sessionID); err != nil {
		c.Logger.Warn("Failed to delete session", zap.String("session_id", sessionID), zap.Error(err))
	}
	c.Authz.Forget(middleware.Identity(ctx))
	ctx.Cookie(c.Config.ExpiredTokenCookie())

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

// Me returns the identity of the current session.
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	return ok(ctx, "Logged in", middleware.Identity(ctx))
}

// Can answers a permission question for the current identity:
// ?module=&action= and optionally ?warehouseId= or ?customerId=.
func (c *AuthController) Can(ctx *fiber.Ctx) error {
	identity := middleware.Identity(ctx)
	allowed := true
	if module := ctx.Query("module"); module != "" {
		allowed = c.Authz.Check(identity, module, ctx.Query("action", authz.ActionRead))
	}
	if id := ctx.Query("warehouseId"); id != "" {
		allowed = allowed && authz.CanAccessWarehouse(identity, id)
	}
	if id := ctx.Query("customerId"); id != "" {
		allowed = allowed && authz.CanAccessCustomer(identity, id)
	}
	return ok(ctx, "Permission checked", fiber.Map{"allowed": allowed})
}
