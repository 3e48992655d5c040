package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wms-finance/authz"
	"wms-finance/config"
	"wms-finance/models"
	"wms-finance/services"
)

const (
	identityKey  = "identity"
	sessionIDKey = "sessionID"
)

// AuthMiddleware resolves the session behind a bearer token, or behind
// the token cookie when no Authorization header is sent.
func AuthMiddleware(auth *services.AuthService, logger *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ctx.Cookies(config.TokenCookieName)
		if authHeader := ctx.Get(fiber.HeaderAuthorization); authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid Authorization header format")
			}
			token = tokenParts[1]
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
		}

		identity, claims, err := auth.Authenticate(token)
		if errors.Is(err, services.ErrInvalidToken) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid token")
		}
		if err != nil {
			logger.Error("Failed to load session", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
		}

		ctx.Locals(identityKey, &identity)
		ctx.Locals(sessionIDKey, claims.SessionID)
		return ctx.Next()
	}
}

// Identity returns the user AuthMiddleware stored, or nil.
func Identity(ctx *fiber.Ctx) *models.User {
	identity, _ := ctx.Locals(identityKey).(*models.User)
	return identity
}

func SessionID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(sessionIDKey).(string)
	return id
}

// CheckPermission lets the request through when the identity holds
// action on module.
func CheckPermission(a *authz.Authorizer, module, action string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity := Identity(ctx)
		if identity == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		if !a.Check(identity, module, action) {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden: You do not have permission")
		}
		return ctx.Next()
	}
}
