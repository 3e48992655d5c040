package controllers

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/middleware"
	"wms-finance/repositories"
	"wms-finance/services"
)

type DashboardController struct {
	Dashboard *services.DashboardService
	Loader    *repositories.Loader
}

func NewDashboardController(dashboard *services.DashboardService, loader *repositories.Loader) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Loader: loader}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	data, err := c.Dashboard.Build(ctx.UserContext(), middleware.Identity(ctx))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Dashboard data",
		"data":    data,
		"loading": c.Loader.Loading(),
	})
}
