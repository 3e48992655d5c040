package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wms-finance/models"
	"wms-finance/services"
	"wms-finance/types"
)

func parseID(ctx *fiber.Ctx) (types.SnowflakeID, error) {
	id, err := types.ParseSnowflakeID(ctx.Params("id"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid ID")
	}
	return id, nil
}

func ok(ctx *fiber.Ctx, message string, data any) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func created(ctx *fiber.Ctx, message string, data any) error {
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func notFound(name string) error {
	return fiber.NewError(fiber.StatusNotFound, name+" not found")
}

// serviceError maps service sentinels onto HTTP statuses; anything else
// is left for the error handler as a 500.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrUnknownReference),
		errors.Is(err, services.ErrBillTotalMismatch),
		errors.Is(err, models.ErrInvalidBill):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrBillState):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}

// parseOptionalID reads an id query parameter; empty means unset.
func parseOptionalID(ctx *fiber.Ctx, key string) (types.SnowflakeID, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := types.ParseSnowflakeID(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return id, nil
}

func parseOptionalDate(ctx *fiber.Ctx, key string) (types.Date, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return types.Date{}, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return d, nil
}
