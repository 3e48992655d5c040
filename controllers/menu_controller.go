package controllers

import (
	"github.com/gofiber/fiber/v2"

	"wms-finance/middleware"
	"wms-finance/services"
)

type MenuController struct {
	Menus *services.MenuService
}

func NewMenuController(menus *services.MenuService) *MenuController {
	return &MenuController{Menus: menus}
}

func (mc *MenuController) GetMenuUser(ctx *fiber.Ctx) error {
	return ok(ctx, "Menus found", mc.Menus.MenusFor(middleware.Identity(ctx)))
}
