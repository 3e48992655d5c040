package services

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"wms-finance/authz"
	"wms-finance/database"
	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/session"
	"wms-finance/types"
)

type counterIDs struct{ n atomic.Int64 }

func (c *counterIDs) Next() types.SnowflakeID {
	return types.SnowflakeID(1000 + c.n.Add(1))
}

type sentMail struct {
	to, attachment string
	bill           models.Bill
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendBill(to string, bill models.Bill, name string, _ []byte) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, attachment: name, bill: bill})
	return nil
}

type fixture struct {
	c        database.Collections
	sessions *session.Store
	mail     *recordingMailer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ids := &counterIDs{}
	c := database.Collections{
		Users:      repositories.NewMemoryCollection[models.User](ids),
		Warehouses: repositories.NewMemoryCollection[models.Warehouse](ids),
		Customers:  repositories.NewMemoryCollection[models.Customer](ids),
		Orders:     repositories.NewMemoryCollection[models.Order](ids),
		Fees:       repositories.NewMemoryCollection[models.FeeConfig](ids),
		Bills:      repositories.NewMemoryCollection[models.Bill](ids),
	}
	require.NoError(t, database.RunSeeders(context.Background(), c))

	store, err := session.Open(session.Options{InMemory: true, TTL: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return fixture{c: c, sessions: store, mail: &recordingMailer{}}
}

func (f fixture) auth() *AuthService {
	return NewAuthService(f.c.Users, f.sessions, "test-secret", time.Hour, zap.NewNop())
}

func (f fixture) bills(opts BillServiceOptions) *BillService {
	return NewBillService(f.c.Bills, f.c.Customers, f.c.Warehouses, f.mail, opts, zap.NewNop())
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	auth := f.auth()

	res, err := auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin", res.User.Username)
	require.NotNil(t, res.User.LastLogin)
	assert.WithinDuration(t, time.Now(), *res.User.LastLogin, time.Minute)

	identity, claims, err := auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, claims.SessionID)
	assert.Equal(t, res.User.ID, identity.ID)
	assert.Empty(t, identity.PasswordHash)
}

func TestLoginByEmail(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth().Login(context.Background(), "manager1@warehouse.com", "manager123")
	require.NoError(t, err)
	assert.Equal(t, "manager1", res.User.Username)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := models.StatusInactive
	_, _, err := f.c.Users.Update(ctx, 2, models.UserPatch{Status: &inactive})
	require.NoError(t, err)

	cases := map[string][2]string{
		"unknown user":   {"ghost", "admin123"},
		"wrong password": {"admin", "nope"},
		"inactive":       {"manager1", "manager123"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth().Login(ctx, tc[0], tc[1])
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	auth := f.auth()

	_, _, err := auth.Authenticate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	res, err := auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(res.SessionID))
	_, _, err = auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(f.c.Users, f.sessions, "other-secret", time.Hour, zap.NewNop())
	res, err = auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	_, _, err = other.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	f := newFixture(t)
	auth := f.auth()
	res, err := auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, _, err = auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserUpdateRefreshesAndRevokesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := f.auth()
	users := NewUserService(f.c.Users, auth)

	res, err := auth.Login(ctx, "manager1", "manager123")
	require.NoError(t, err)

	email := "boss@warehouse.com"
	_, found, err := users.Update(ctx, res.User.ID, models.UserPatch{Email: &email})
	require.NoError(t, err)
	require.True(t, found)
	identity, _, err := auth.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, email, identity.Email)

	inactive := models.StatusInactive
	_, _, err = users.Update(ctx, res.User.ID, models.UserPatch{Status: &inactive})
	require.NoError(t, err)
	_, _, err = auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserCreateHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := f.auth()
	users := NewUserService(f.c.Users, auth)

	in := UserInput{Password: "secret1"}
	in.Username, in.Email, in.Role, in.Status = "clerk", "clerk@warehouse.com", models.RoleOperator, models.StatusActive
	created, err := users.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", created.PasswordHash)

	_, err = auth.Login(ctx, "clerk", "secret1")
	assert.NoError(t, err)
}

func TestUserDeleteRevokesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := f.auth()
	users := NewUserService(f.c.Users, auth)

	res, err := auth.Login(ctx, "manager1", "manager123")
	require.NoError(t, err)
	found, err := users.Delete(ctx, res.User.ID)
	require.NoError(t, err)
	assert.True(t, found)
	_, _, err = auth.Authenticate(res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	found, err = users.Delete(ctx, res.User.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func newBill() models.Bill {
	return models.Bill{
		BillNumber:    "BILL202501001",
		CustomerID:    1,
		WarehouseID:   2,
		PeriodStart:   types.NewDate(2025, time.January, 1),
		PeriodEnd:     types.NewDate(2025, time.January, 31),
		StorageFees:   decimal.NewFromInt(100),
		OperationFees: decimal.NewFromInt(50),
		ExtraFees:     decimal.NewFromInt(10),
		TotalAmount:   decimal.NewFromInt(200),
		Status:        models.BillDraft,
	}
}

func TestBillCreateCopiesNames(t *testing.T) {
	f := newFixture(t)
	created, err := f.bills(BillServiceOptions{}).Create(context.Background(), newBill())
	require.NoError(t, err)
	assert.Equal(t, "阿里巴巴集团", created.CustomerName)
	assert.Equal(t, "北京仓库", created.WarehouseName)
	assert.True(t, created.TotalAmount.Equal(decimal.NewFromInt(200)), "total is kept as entered")
}

func TestBillCreateUnknownReference(t *testing.T) {
	f := newFixture(t)
	b := newBill()
	b.CustomerID = 99
	_, err := f.bills(BillServiceOptions{}).Create(context.Background(), b)
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestBillCreateEnforcedTotal(t *testing.T) {
	f := newFixture(t)
	svc := f.bills(BillServiceOptions{EnforceTotal: true})
	_, err := svc.Create(context.Background(), newBill())
	assert.ErrorIs(t, err, ErrBillTotalMismatch)

	b := newBill()
	b.TotalAmount = decimal.NewFromInt(160)
	_, err = svc.Create(context.Background(), b)
	assert.NoError(t, err)
}

func TestBillCreateRejectsInvertedPeriod(t *testing.T) {
	f := newFixture(t)
	b := newBill()
	b.PeriodStart, b.PeriodEnd = b.PeriodEnd, b.PeriodStart
	_, err := f.bills(BillServiceOptions{}).Create(context.Background(), b)
	assert.ErrorIs(t, err, models.ErrInvalidBill)
}

func TestBillUpdateChecksMergedRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.bills(BillServiceOptions{})

	end := types.NewDate(2024, time.November, 1)
	_, found, err := svc.Update(ctx, 1, models.BillPatch{PeriodEnd: &end})
	assert.True(t, found)
	assert.ErrorIs(t, err, models.ErrInvalidBill)

	cid := types.SnowflakeID(2)
	updated, found, err := svc.Update(ctx, 1, models.BillPatch{CustomerID: &cid})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "腾讯科技", updated.CustomerName)
	assert.Equal(t, "上海仓库", updated.WarehouseName)

	_, found, err = svc.Update(ctx, 404, models.BillPatch{CustomerID: &cid})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBillSendMailsCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.bills(BillServiceOptions{Lang: language.English})
	draft, err := svc.Create(ctx, newBill())
	require.NoError(t, err)

	sent, found, err := svc.Send(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.BillSent, sent.Status)
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "wang@alibaba.com", f.mail.sent[0].to)
	assert.Equal(t, "BILL202501001.csv", f.mail.sent[0].attachment)
}

func TestBillSendKeepsStatusWhenMailFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mail.err = errors.New("smtp down")
	svc := f.bills(BillServiceOptions{})
	draft, err := svc.Create(ctx, newBill())
	require.NoError(t, err)

	_, _, err = svc.Send(ctx, draft.ID)
	assert.Error(t, err)
	got, _, err := svc.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillDraft, got.Status)
}

func TestBillSendRefusesPaid(t *testing.T) {
	f := newFixture(t)
	_, found, err := f.bills(BillServiceOptions{}).Send(context.Background(), 2)
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrBillState)
	assert.Empty(t, f.mail.sent)
}

func TestBillPay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.bills(BillServiceOptions{})

	paid, found, err := svc.Pay(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.BillPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	_, _, err = svc.Pay(ctx, 1)
	assert.ErrorIs(t, err, ErrBillState)

	draft, err := svc.Create(ctx, newBill())
	require.NoError(t, err)
	_, _, err = svc.Pay(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrBillState)

	_, found, err = svc.Pay(ctx, 404)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOrderNamesFollowIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewOrderService(f.c.Orders, f.c.Customers, f.c.Warehouses)

	created, err := svc.Create(ctx, models.Order{
		OrderNumber: "ORD1", CustomerID: 2, WarehouseID: 1,
		OrderType: models.OrderInbound, Quantity: 10, Status: models.OrderPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "腾讯科技", created.CustomerName)
	assert.Equal(t, "上海仓库", created.WarehouseName)
	assert.Nil(t, created.CompletedAt)

	// Renaming the customer does not touch the copy.
	name := "Tencent"
	_, _, err = f.c.Customers.Update(ctx, 2, models.CustomerPatch{Name: &name})
	require.NoError(t, err)
	qty := 20
	updated, _, err := svc.Update(ctx, created.ID, models.OrderPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "腾讯科技", updated.CustomerName)

	cid := types.SnowflakeID(2)
	completed := models.OrderCompleted
	updated, _, err = svc.Update(ctx, created.ID, models.OrderPatch{CustomerID: &cid, Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, "Tencent", updated.CustomerName)
	assert.NotNil(t, updated.CompletedAt)

	bad := types.SnowflakeID(77)
	_, _, err = svc.Update(ctx, created.ID, models.OrderPatch{WarehouseID: &bad})
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func customerWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	header := make([]any, len(ImportColumns))
	for i, h := range ImportColumns {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestCustomerImport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCustomerService(f.c.Customers, validator.New())

	book := customerWorkbook(t, [][]any{
		{"jd001", "京东物流", "赵先生", "13800138003", "zhao@jd.com", "北京", "45"},
		{"ALI001", "Duplicate", "", "", "", "", ""},
		{"BAD001", "Bad mail", "", "", "not-an-email", "", ""},
		{"BAD002", "Bad terms", "", "", "", "", "soon"},
	})
	res, err := svc.Import(ctx, book)
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalRows)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.SkippedCount)
	assert.Equal(t, []string{"ALI001"}, res.SkippedItems)
	assert.Equal(t, 2, res.ErrorCount)
	assert.Len(t, res.ErrorMessages, 2)

	all, err := f.c.Customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "JD001", all[2].Code)
	assert.Equal(t, 45, all[2].PaymentTerms)
	assert.Equal(t, models.StatusActive, all[2].Status)
}

func TestCustomerImportRejectsHeaderOnly(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomerService(f.c.Customers, validator.New())
	_, err := svc.Import(context.Background(), customerWorkbook(t, nil))
	assert.Error(t, err)
}

func TestMenusFollowPermissions(t *testing.T) {
	a, err := authz.New(zap.NewNop())
	require.NoError(t, err)
	menus := NewMenuService(a, language.English)
	users, err := database.SeedUsers()
	require.NoError(t, err)

	ids := func(items []models.MenuItem) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	admin := menus.MenusFor(&users[0])
	assert.Equal(t, []string{"dashboard", "user-management", "basic-info", "orders", "fee-management", "bills"}, ids(admin))

	manager := menus.MenusFor(&users[1])
	assert.Equal(t, []string{"dashboard", "basic-info", "orders", "bills"}, ids(manager))
	assert.Equal(t, []string{"warehouses", "customers"}, ids(manager[1].Children))

	zh := NewMenuService(a, language.Chinese).MenusFor(&users[0])
	assert.Equal(t, "仪表板", zh[0].Label)
}

func readAll(modules ...string) []models.Permission {
	perms := make([]models.Permission, 0, len(modules))
	for _, m := range modules {
		perms = append(perms, models.Permission{Module: m, Actions: []string{authz.ActionRead}})
	}
	return perms
}

func TestDashboardAppliesScope(t *testing.T) {
	f := newFixture(t)
	a, err := authz.New(zap.NewNop())
	require.NoError(t, err)
	svc := NewDashboardService(f.c.Bills, f.c.Orders, f.c.Customers, f.c.Warehouses, a)
	perms := readAll(authz.ModuleBill, authz.ModuleCustomer, authz.ModuleWarehouse)

	all := &models.User{Base: models.Base{ID: 101}, Permissions: perms,
		Warehouses: []string{models.AllScope}, Customers: []string{models.AllScope}}
	d, err := svc.Build(context.Background(), all)
	require.NoError(t, err)
	assert.Equal(t, 2, d.ActiveCustomers)
	assert.Equal(t, 2, d.ActiveWarehouses)
	assert.Equal(t, 1, d.CompletedOrders)
	assert.True(t, d.TotalRevenue.Equal(decimal.NewFromInt(34500)))
	assert.Len(t, d.Utilization, 2)

	narrow := &models.User{Base: models.Base{ID: 102}, Permissions: perms,
		Warehouses: []string{"1"}, Customers: []string{"1"}}
	d, err = svc.Build(context.Background(), narrow)
	require.NoError(t, err)
	assert.Equal(t, 1, d.ActiveCustomers)
	assert.Equal(t, 1, d.ActiveWarehouses)
	require.Len(t, d.RecentBills, 1)
	assert.Equal(t, "BILL202412001", d.RecentBills[0].BillNumber)
}

func TestDashboardHidesUnreadableModules(t *testing.T) {
	f := newFixture(t)
	a, err := authz.New(zap.NewNop())
	require.NoError(t, err)
	svc := NewDashboardService(f.c.Bills, f.c.Orders, f.c.Customers, f.c.Warehouses, a)

	clerk := &models.User{Base: models.Base{ID: 103}, Permissions: readAll(authz.ModuleWarehouse),
		Warehouses: []string{models.AllScope}, Customers: []string{models.AllScope}}
	d, err := svc.Build(context.Background(), clerk)
	require.NoError(t, err)
	assert.Empty(t, d.RecentBills)
	assert.NotNil(t, d.RecentBills)
	assert.True(t, d.TotalRevenue.IsZero())
	assert.Equal(t, 0, d.ActiveCustomers)
	assert.Equal(t, 2, d.ActiveWarehouses)
	assert.Equal(t, 1, d.CompletedOrders)
}
