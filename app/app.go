// Package app owns the process-wide state: the collections, the session
// store, the authorizer and the services built on them.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"wms-finance/authz"
	"wms-finance/config"
	"wms-finance/database"
	"wms-finance/idgen"
	"wms-finance/mailer"
	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/services"
	"wms-finance/session"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Lang     language.Tag
	DB       *gorm.DB
	Data     database.Collections
	Loader   *repositories.Loader
	Sessions *session.Store
	Authz    *authz.Authorizer
	Mailer   mailer.Mailer
	Validate *validator.Validate

	Auth       *services.AuthService
	Users      *services.UserService
	Warehouses *services.CRUD[models.Warehouse, models.WarehousePatch]
	Customers  *services.CustomerService
	Orders     *services.OrderService
	Fees       *services.CRUD[models.FeeConfig, models.FeeConfigPatch]
	Bills      *services.BillService
	Dashboard  *services.DashboardService
	Menus      *services.MenuService
}

// New wires the application. Fixtures are not loaded until Start.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Lang:     models.MatchLocale(cfg.DisplayLocale),
		Loader:   repositories.NewLoader(),
		Validate: validator.New(),
	}

	ids, err := idgen.New(cfg.SnowflakeNode)
	if err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case "database":
		db, err := database.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		a.DB = db
		a.Data = database.Collections{
			Users:      repositories.NewGormCollection[models.User](db, ids),
			Warehouses: repositories.NewGormCollection[models.Warehouse](db, ids),
			Customers:  repositories.NewGormCollection[models.Customer](db, ids),
			Orders:     repositories.NewGormCollection[models.Order](db, ids),
			Fees:       repositories.NewGormCollection[models.FeeConfig](db, ids),
			Bills:      repositories.NewGormCollection[models.Bill](db, ids),
		}
	default:
		a.Data = database.Collections{
			Users:      repositories.NewMemoryCollection[models.User](ids),
			Warehouses: repositories.NewMemoryCollection[models.Warehouse](ids),
			Customers:  repositories.NewMemoryCollection[models.Customer](ids),
			Orders:     repositories.NewMemoryCollection[models.Order](ids),
			Fees:       repositories.NewMemoryCollection[models.FeeConfig](ids),
			Bills:      repositories.NewMemoryCollection[models.Bill](ids),
		}
	}

	a.Sessions, err = session.Open(session.Options{
		Path:     cfg.SessionPath,
		InMemory: cfg.SessionInMemory,
		TTL:      cfg.TokenLifetime(),
		Logger:   logger,
	})
	if err != nil {
		a.closeDB()
		return nil, err
	}
	if n, err := a.Sessions.Count(); err == nil && n > 0 {
		logger.Info("Sessions restored", zap.Int("count", n))
	}

	a.Authz, err = authz.New(logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Mailer = mailer.New(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}, logger)

	a.Auth = services.NewAuthService(a.Data.Users, a.Sessions, cfg.JWTSecret, cfg.TokenLifetime(), logger)
	a.Users = services.NewUserService(a.Data.Users, a.Auth)
	a.Warehouses = services.NewCRUD[models.Warehouse, models.WarehousePatch](a.Data.Warehouses)
	a.Customers = services.NewCustomerService(a.Data.Customers, a.Validate)
	a.Orders = services.NewOrderService(a.Data.Orders, a.Data.Customers, a.Data.Warehouses)
	a.Fees = services.NewCRUD[models.FeeConfig, models.FeeConfigPatch](a.Data.Fees)
	a.Bills = services.NewBillService(a.Data.Bills, a.Data.Customers, a.Data.Warehouses, a.Mailer,
		services.BillServiceOptions{EnforceTotal: cfg.EnforceBillTotal, Lang: a.Lang}, logger)
	a.Dashboard = services.NewDashboardService(a.Data.Bills, a.Data.Orders, a.Data.Customers, a.Data.Warehouses, a.Authz)
	a.Menus = services.NewMenuService(a.Authz, a.Lang)
	return a, nil
}

// Start loads the fixtures in the background after the configured
// latency.
func (a *App) Start(ctx context.Context) {
	a.Loader.Start(ctx, a.Config.SimulatedLatency, func(ctx context.Context) error {
		if err := database.RunSeeders(ctx, a.Data); err != nil {
			a.Logger.Error("Failed to load fixtures", zap.Error(err))
			return fmt.Errorf("load fixtures: %w", err)
		}
		a.Logger.Info("Fixtures loaded", zap.Duration("latency", a.Config.SimulatedLatency))
		return nil
	})
}

func (a *App) Close() error {
	var errs []error
	if a.Sessions != nil {
		errs = append(errs, a.Sessions.Close())
	}
	errs = append(errs, a.closeDB())
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
