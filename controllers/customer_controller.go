package controllers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wms-finance/app"
	"wms-finance/models"
	"wms-finance/query"
	"wms-finance/services"
)

type CustomerController struct {
	*ResourceController[models.Customer, models.Customer, models.CustomerPatch]
	Customers *services.CustomerService
	Logger    *zap.Logger
}

func NewCustomerController(a *app.App) *CustomerController {
	return &CustomerController{
		ResourceController: &ResourceController[models.Customer, models.Customer, models.CustomerPatch]{
			Name:     "Customer",
			Service:  a.Customers,
			Columns:  services.CustomerColumns(a.Lang),
			Loader:   a.Loader,
			Validate: a.Validate,
			Scope:    services.CustomerScope,
			Filters: func(ctx *fiber.Ctx) ([]query.Predicate[models.Customer], error) {
				return []query.Predicate[models.Customer]{
					query.Equal(func(c models.Customer) models.Status { return c.Status }, models.Status(ctx.Query("status"))),
				}, nil
			},
		},
		Customers: a.Customers,
		Logger:    a.Logger,
	}
}

// CreateCustomerFromExcel imports customers from an uploaded workbook
// sent as the "file" form field.
func (c *CustomerController) CreateCustomerFromExcel(ctx *fiber.Ctx) error {
	if err := c.waitReady(ctx); err != nil {
		return err
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "File is required",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid file format. Only .xlsx and .xls files are allowed",
		})
	}

	src, err := file.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to open file")
	}
	defer src.Close()

	result, err := c.Customers.Import(ctx.UserContext(), src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	c.Logger.Info("Customers imported",
		zap.String("file", file.Filename), zap.Int("created", result.SuccessCount),
		zap.Int("skipped", result.SkippedCount), zap.Int("errors", result.ErrorCount))

	return ok(ctx, "Upload completed", result)
}
