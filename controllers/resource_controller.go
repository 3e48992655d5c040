package controllers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"wms-finance/middleware"
	"wms-finance/models"
	"wms-finance/query"
	"wms-finance/repositories"
	"wms-finance/table"
	"wms-finance/types"
)

// Service is what a resource controller drives. I is the create payload,
// usually T itself.
type Service[T any, I any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id types.SnowflakeID) (T, bool, error)
	Create(ctx context.Context, input I) (T, error)
	Update(ctx context.Context, id types.SnowflakeID, patch P) (T, bool, error)
	Delete(ctx context.Context, id types.SnowflakeID) (bool, error)
}

type defaulter interface {
	SetDefaults()
}

// ResourceController serves list, grid and CRUD endpoints for one entity.
type ResourceController[T any, I any, P repositories.Patch[T]] struct {
	Name     string
	Service  Service[T, I, P]
	Columns  []table.Column[T]
	Loader   *repositories.Loader
	Validate *validator.Validate
	// Scope limits the records an identity may see or change. Nil means
	// every record.
	Scope func(*models.User) query.Predicate[T]
	// Filters reads list filters from the query string.
	Filters func(*fiber.Ctx) ([]query.Predicate[T], error)
	// ScopeOnCreate applies Scope to new records as well; only entities
	// that reference a warehouse and customer set it.
	ScopeOnCreate bool
}

func (c *ResourceController[T, I, P]) allowed(ctx *fiber.Ctx, rec T) bool {
	if c.Scope == nil {
		return true
	}
	return c.Scope(middleware.Identity(ctx))(rec)
}

// records lists what the caller may see after filters and sorting.
func (c *ResourceController[T, I, P]) records(ctx *fiber.Ctx, sort table.SortState) ([]T, error) {
	all, err := c.Service.List(ctx.UserContext())
	if err != nil {
		return nil, err
	}
	var preds []query.Predicate[T]
	if c.Scope != nil {
		preds = append(preds, c.Scope(middleware.Identity(ctx)))
	}
	if c.Filters != nil {
		extra, err := c.Filters(ctx)
		if err != nil {
			return nil, err
		}
		preds = append(preds, extra...)
	}
	return query.Sort(query.Filter(all, preds...), sort.Key, sort.Direction, fieldOf[T]), nil
}

func fieldOf[T any](rec T, key string) any {
	return table.FieldByJSON(rec, key)
}

// sortable reports whether key names a sortable column.
func (c *ResourceController[T, I, P]) sortable(key string) bool {
	for _, col := range c.Columns {
		if col.Key == key && col.Sortable {
			return true
		}
	}
	return false
}

// sortFromQuery reads sort/direction. Keys of unknown or unsortable
// columns are ignored.
func (c *ResourceController[T, I, P]) sortFromQuery(ctx *fiber.Ctx) table.SortState {
	key := ctx.Query("sort")
	if !c.sortable(key) {
		return table.SortState{}
	}
	return table.SortState{Key: key, Direction: types.ParseSortDirection(ctx.Query("direction"))}
}

func (c *ResourceController[T, I, P]) List(ctx *fiber.Ctx) error {
	if c.Loader.Loading() {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Loading", "data": []T{}, "loading": true})
	}
	list, err := c.records(ctx, c.sortFromQuery(ctx))
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%ss found", c.Name),
		"data":    list,
		"loading": false,
	})
}

// Grid renders the list as a display grid. toggle=<key> applies a header
// activation to the sort given by sort/direction.
func (c *ResourceController[T, I, P]) Grid(ctx *fiber.Ctx) error {
	sort := c.sortFromQuery(ctx)
	if key := ctx.Query("toggle"); c.sortable(key) {
		var current *table.SortState
		if sort.Key != "" {
			current = &sort
		}
		sort = table.NextSort(current, key)
	}

	var (
		list    []T
		loading = c.Loader.Loading()
	)
	if !loading {
		var err error
		if list, err = c.records(ctx, sort); err != nil {
			return err
		}
	}
	var state *table.SortState
	if sort.Key != "" {
		state = &sort
	}
	grid := table.Build(list, c.Columns, state, loading)

	if ctx.Query("format") == "html" {
		var buf bytes.Buffer
		if err := grid.WriteHTML(&buf); err != nil {
			return err
		}
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.Send(buf.Bytes())
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%s grid", c.Name),
		"data":    grid,
		"sort":    state,
	})
}

func (c *ResourceController[T, I, P]) Get(ctx *fiber.Ctx) error {
	rec, err := c.find(ctx)
	if err != nil {
		return err
	}
	return ok(ctx, c.Name+" found", rec)
}

// find loads the record named by the id parameter and checks scope.
func (c *ResourceController[T, I, P]) find(ctx *fiber.Ctx) (T, error) {
	var zero T
	id, err := parseID(ctx)
	if err != nil {
		return zero, err
	}
	rec, found, err := c.Service.Get(ctx.UserContext(), id)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, notFound(c.Name)
	}
	if !c.allowed(ctx, rec) {
		return zero, fiber.NewError(fiber.StatusForbidden, "Forbidden: "+c.Name+" is outside your scope")
	}
	return rec, nil
}

func (c *ResourceController[T, I, P]) waitReady(ctx *fiber.Ctx) error {
	if err := c.Loader.Wait(ctx.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Data is not available: "+err.Error())
	}
	return nil
}

func (c *ResourceController[T, I, P]) Create(ctx *fiber.Ctx) error {
	if err := c.waitReady(ctx); err != nil {
		return err
	}
	var input I
	if err := ctx.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if d, ok := any(&input).(defaulter); ok {
		d.SetDefaults()
	}
	if err := c.Validate.Struct(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if rec, isRecord := any(input).(T); isRecord && c.ScopeOnCreate && !c.allowed(ctx, rec) {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: "+c.Name+" is outside your scope")
	}

	rec, err := c.Service.Create(ctx.UserContext(), input)
	if err != nil {
		return serviceError(err)
	}
	return created(ctx, c.Name+" created successfully", rec)
}

func (c *ResourceController[T, I, P]) Update(ctx *fiber.Ctx) error {
	if err := c.waitReady(ctx); err != nil {
		return err
	}
	current, err := c.find(ctx)
	if err != nil {
		return err
	}
	var patch P
	if err := ctx.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := c.Validate.Struct(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	merged := current
	patch.Apply(&merged)
	if !c.allowed(ctx, merged) {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: "+c.Name+" is outside your scope")
	}

	id, _ := parseID(ctx)
	rec, found, err := c.Service.Update(ctx.UserContext(), id, patch)
	if err != nil {
		return serviceError(err)
	}
	if !found {
		return notFound(c.Name)
	}
	return ok(ctx, c.Name+" updated successfully", rec)
}

func (c *ResourceController[T, I, P]) Delete(ctx *fiber.Ctx) error {
	if err := c.waitReady(ctx); err != nil {
		return err
	}
	rec, err := c.find(ctx)
	if err != nil {
		return err
	}
	id, _ := parseID(ctx)
	found, err := c.Service.Delete(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	if !found {
		return notFound(c.Name)
	}
	return ok(ctx, c.Name+" deleted successfully", rec)
}
