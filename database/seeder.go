package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/types"
)

// Collections is the set of stores fixtures are seeded into.
type Collections struct {
	Users      repositories.Collection[models.User]
	Warehouses repositories.Collection[models.Warehouse]
	Customers  repositories.Collection[models.Customer]
	Orders     repositories.Collection[models.Order]
	Fees       repositories.Collection[models.FeeConfig]
	Bills      repositories.Collection[models.Bill]
}

// RunSeeders installs the fixture records; records whose ids already
// exist are left alone.
func RunSeeders(ctx context.Context, c Collections) error {
	users, err := SeedUsers()
	if err != nil {
		return err
	}
	steps := []struct {
		name string
		run  func() error
	}{
		{"users", func() error { return c.Users.Seed(ctx, users) }},
		{"warehouses", func() error { return c.Warehouses.Seed(ctx, SeedWarehouses()) }},
		{"customers", func() error { return c.Customers.Seed(ctx, SeedCustomers()) }},
		{"orders", func() error { return c.Orders.Seed(ctx, SeedOrders()) }},
		{"fee configs", func() error { return c.Fees.Seed(ctx, SeedFeeConfigs()) }},
		{"bills", func() error { return c.Bills.Seed(ctx, SeedBills()) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(types.DateLayout, s)
		if err != nil {
			panic(err)
		}
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func date(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func crud() []string {
	return []string{"create", "read", "update", "delete"}
}

// SeedUsers returns the admin (password admin123) and manager1
// (password manager123) accounts.
func SeedUsers() ([]models.User, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash fixture password: %w", err)
	}
	managerHash, err := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash fixture password: %w", err)
	}

	return []models.User{
		{
			Base:         models.Base{ID: 1, CreatedAt: day("2024-01-01")},
			Username:     "admin",
			Email:        "admin@warehouse.com",
			PasswordHash: string(adminHash),
			Role:         models.RoleAdmin,
			Permissions: []models.Permission{
				{ID: "1", Name: "User management", Module: "user", Actions: crud()},
				{ID: "2", Name: "Warehouse management", Module: "warehouse", Actions: crud()},
				{ID: "3", Name: "Customer management", Module: "customer", Actions: crud()},
				{ID: "4", Name: "Fee management", Module: "fee", Actions: crud()},
				{ID: "5", Name: "Bill query", Module: "bill", Actions: []string{"create", "read", "update", "delete", "export"}},
				{ID: "6", Name: "Order management", Module: "order", Actions: crud()},
			},
			Warehouses: []string{models.AllScope},
			Customers:  []string{models.AllScope},
			Status:     models.StatusActive,
			LastLogin:  dayPtr("2024-12-19T10:30:00Z"),
		},
		{
			Base:         models.Base{ID: 2, CreatedAt: day("2024-01-15")},
			Username:     "manager1",
			Email:        "manager1@warehouse.com",
			PasswordHash: string(managerHash),
			Role:         models.RoleManager,
			Permissions: []models.Permission{
				{ID: "2", Name: "Warehouse management", Module: "warehouse", Actions: []string{"read"}},
				{ID: "3", Name: "Customer management", Module: "customer", Actions: []string{"read"}},
				{ID: "5", Name: "Bill query", Module: "bill", Actions: []string{"read", "export"}},
				{ID: "6", Name: "Order management", Module: "order", Actions: []string{"read"}},
			},
			Warehouses: []string{"1", "2"},
			Customers:  []string{"1", "2", "3"},
			Status:     models.StatusActive,
			LastLogin:  dayPtr("2024-12-18T15:20:00Z"),
		},
	}, nil
}

func SeedWarehouses() []models.Warehouse {
	return []models.Warehouse{
		{
			Base: models.Base{ID: 1, CreatedAt: day("2024-01-01")},
			Name: "上海仓库", Code: "SH001", Address: "上海市浦东新区XX路123号", Manager: "张经理",
			Capacity: 1000, UsedCapacity: 750, Status: models.StatusActive,
		},
		{
			Base: models.Base{ID: 2, CreatedAt: day("2024-01-15")},
			Name: "北京仓库", Code: "BJ001", Address: "北京市朝阳区XX路456号", Manager: "李经理",
			Capacity: 800, UsedCapacity: 600, Status: models.StatusActive,
		},
	}
}

func SeedCustomers() []models.Customer {
	return []models.Customer{
		{
			Base: models.Base{ID: 1, CreatedAt: day("2024-01-01")},
			Name: "阿里巴巴集团", Code: "ALI001", ContactPerson: "王先生", Phone: "13800138001",
			Email: "wang@alibaba.com", Address: "杭州市西湖区XX路789号", PaymentTerms: 30, Status: models.StatusActive,
		},
		{
			Base: models.Base{ID: 2, CreatedAt: day("2024-01-10")},
			Name: "腾讯科技", Code: "TX001", ContactPerson: "刘女士", Phone: "13800138002",
			Email: "liu@tencent.com", Address: "深圳市南山区XX路101号", PaymentTerms: 15, Status: models.StatusActive,
		},
	}
}

func SeedOrders() []models.Order {
	return []models.Order{
		{
			Base:        models.Base{ID: 1, CreatedAt: day("2024-12-19T08:00:00Z")},
			OrderNumber: "ORD202412190001",
			CustomerID:  1, CustomerName: "阿里巴巴集团",
			WarehouseID: 1, WarehouseName: "上海仓库",
			OrderType: models.OrderInbound, Quantity: 500, PalletCount: 25,
			Status: models.OrderCompleted, CompletedAt: dayPtr("2024-12-19T12:00:00Z"),
		},
		{
			Base:        models.Base{ID: 2, CreatedAt: day("2024-12-19T09:30:00Z")},
			OrderNumber: "ORD202412190002",
			CustomerID:  2, CustomerName: "腾讯科技",
			WarehouseID: 2, WarehouseName: "北京仓库",
			OrderType: models.OrderOutbound, Quantity: 300, PalletCount: 15,
			Status: models.OrderProcessing,
		},
	}
}

func SeedFeeConfigs() []models.FeeConfig {
	return []models.FeeConfig{
		{
			Base: models.Base{ID: 1, CreatedAt: day("2024-01-01")},
			Name: "标准仓储费", Type: models.FeeStorage, Unit: models.UnitPerPallet,
			BasePrice: decimal.NewFromInt(50), Description: "每个板位每天的仓储费用", IsActive: true,
		},
		{
			Base: models.Base{ID: 2, CreatedAt: day("2024-01-01")},
			Name: "入库操作费", Type: models.FeeOperation, Unit: models.UnitPerOrder,
			BasePrice: decimal.NewFromInt(100), Description: "入库操作费用", IsActive: true,
		},
		{
			Base: models.Base{ID: 3, CreatedAt: day("2024-01-01")},
			Name: "快递费", Type: models.FeeTransport, Unit: models.UnitPerItem,
			BasePrice: decimal.NewFromInt(15), Description: "快递配送费用", IsActive: true,
		},
	}
}

func SeedBills() []models.Bill {
	return []models.Bill{
		{
			Base:       models.Base{ID: 1, CreatedAt: day("2024-12-19T00:00:00Z")},
			BillNumber: "BILL202412001",
			CustomerID: 1, CustomerName: "阿里巴巴集团",
			WarehouseID: 1, WarehouseName: "上海仓库",
			PeriodStart: date("2024-12-01"), PeriodEnd: date("2024-12-31"),
			StorageFees: decimal.NewFromInt(15000), OperationFees: decimal.NewFromInt(3000),
			ExtraFees: decimal.NewFromInt(1200), TotalAmount: decimal.NewFromInt(19200),
			Status: models.BillSent,
		},
		{
			Base:       models.Base{ID: 2, CreatedAt: day("2024-12-18T00:00:00Z")},
			BillNumber: "BILL202412002",
			CustomerID: 2, CustomerName: "腾讯科技",
			WarehouseID: 2, WarehouseName: "北京仓库",
			PeriodStart: date("2024-12-01"), PeriodEnd: date("2024-12-31"),
			StorageFees: decimal.NewFromInt(12000), OperationFees: decimal.NewFromInt(2500),
			ExtraFees: decimal.NewFromInt(800), TotalAmount: decimal.NewFromInt(15300),
			Status: models.BillPaid, PaidAt: dayPtr("2024-12-19T14:30:00Z"),
		},
	}
}
