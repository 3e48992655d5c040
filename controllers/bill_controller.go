package controllers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"wms-finance/app"
	"wms-finance/export"
	"wms-finance/models"
	"wms-finance/query"
	"wms-finance/services"
	"wms-finance/types"
)

type BillController struct {
	*ResourceController[models.Bill, models.Bill, models.BillPatch]
	Bills  *services.BillService
	Lang   language.Tag
	Logger *zap.Logger
}

func NewBillController(a *app.App) *BillController {
	return &BillController{
		ResourceController: &ResourceController[models.Bill, models.Bill, models.BillPatch]{
			Name:          "Bill",
			Service:       a.Bills,
			Columns:       services.BillColumns(a.Lang),
			Loader:        a.Loader,
			Validate:      a.Validate,
			Scope:         services.BillScope,
			ScopeOnCreate: true,
			Filters: func(ctx *fiber.Ctx) ([]query.Predicate[models.Bill], error) {
				f, err := billFilter(ctx)
				if err != nil {
					return nil, err
				}
				return f.Predicates(), nil
			},
		},
		Bills:  a.Bills,
		Lang:   a.Lang,
		Logger: a.Logger,
	}
}

// billFilter reads start, end, customerId, warehouseId, status and policy.
func billFilter(ctx *fiber.Ctx) (query.BillFilter, error) {
	var (
		f   query.BillFilter
		err error
	)
	if f.Start, err = parseOptionalDate(ctx, "start"); err != nil {
		return f, err
	}
	if f.End, err = parseOptionalDate(ctx, "end"); err != nil {
		return f, err
	}
	if f.CustomerID, err = parseOptionalID(ctx, "customerId"); err != nil {
		return f, err
	}
	if f.WarehouseID, err = parseOptionalID(ctx, "warehouseId"); err != nil {
		return f, err
	}
	if f.Policy, err = query.ParseRangePolicy(ctx.Query("policy")); err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	f.Status = models.BillStatus(ctx.Query("status"))
	return f, nil
}

// Summary totals the bills matching the current filter.
func (c *BillController) Summary(ctx *fiber.Ctx) error {
	bills, err := c.records(ctx, c.sortFromQuery(ctx))
	if err != nil {
		return err
	}
	return ok(ctx, "Bill summary", query.SummarizeBills(bills))
}

// Export downloads the filtered bills as CSV or XLSX.
func (c *BillController) Export(ctx *fiber.Ctx) error {
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	enc, err := export.ParseEncoding(ctx.Query("encoding"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	bills, err := c.records(ctx, c.sortFromQuery(ctx))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if format == export.FormatXLSX {
		err = export.WriteXLSX(&buf, bills, c.Lang)
	} else {
		err = export.WriteCSV(&buf, bills, c.Lang, enc)
	}
	if err != nil {
		c.Logger.Error("Failed to export bills", zap.String("format", string(format)), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to export bills")
	}

	ctx.Set(fiber.HeaderContentType, export.ContentType(format, enc))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename(format, time.Now())))
	return ctx.Send(buf.Bytes())
}

func (c *BillController) Send(ctx *fiber.Ctx) error {
	return c.transition(ctx, "Bill sent", c.Bills.Send)
}

func (c *BillController) Pay(ctx *fiber.Ctx) error {
	return c.transition(ctx, "Bill paid", c.Bills.Pay)
}

func (c *BillController) transition(ctx *fiber.Ctx, message string, step func(ctx context.Context, id types.SnowflakeID) (models.Bill, bool, error)) error {
	if err := c.waitReady(ctx); err != nil {
		return err
	}
	bill, err := c.find(ctx)
	if err != nil {
		return err
	}
	updated, found, err := step(ctx.UserContext(), bill.ID)
	if err != nil {
		return serviceError(err)
	}
	if !found {
		return notFound(c.Name)
	}
	return ok(ctx, message, updated)
}
