package authz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wms-finance/models"
)

func newAuthorizer(t *testing.T) *Authorizer {
	t.Helper()
	a, err := New(zap.NewNop())
	require.NoError(t, err)
	return a
}

func manager() *models.User {
	return &models.User{
		Base:     models.Base{ID: 2},
		Username: "manager1",
		Role:     models.RoleManager,
		Permissions: []models.Permission{
			{ID: "4", Name: "Orders", Module: ModuleOrder, Actions: []string{ActionRead}},
			{ID: "5", Name: "Bills", Module: ModuleBill, Actions: []string{ActionRead, ActionExport}},
		},
		Warehouses: []string{"1"},
		Customers:  []string{"1", "2"},
	}
}

func TestCheckGrantsListedActions(t *testing.T) {
	a := newAuthorizer(t)
	u := manager()
	assert.True(t, a.Check(u, ModuleBill, ActionRead))
	assert.True(t, a.Check(u, ModuleBill, ActionExport))
	assert.False(t, a.Check(u, ModuleBill, ActionDelete))
}

func TestCheckWithoutModuleEntryDeniesEveryAction(t *testing.T) {
	a := newAuthorizer(t)
	u := manager()
	for _, act := range []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionExport} {
		assert.False(t, a.Check(u, ModuleUser, act), act)
	}
}

func TestCheckNilIdentity(t *testing.T) {
	a := newAuthorizer(t)
	assert.False(t, a.Check(nil, ModuleBill, ActionRead))
}

func TestRoleIsInformational(t *testing.T) {
	a := newAuthorizer(t)
	u := &models.User{Base: models.Base{ID: 9}, Role: models.RoleAdmin}
	assert.False(t, a.Check(u, ModuleUser, ActionRead))
}

func TestCheckFollowsChangedPermissions(t *testing.T) {
	a := newAuthorizer(t)
	u := manager()
	require.True(t, a.Check(u, ModuleBill, ActionExport))

	u.Permissions = []models.Permission{{Module: ModuleBill, Actions: []string{ActionRead}}}
	assert.False(t, a.Check(u, ModuleBill, ActionExport))
	assert.False(t, a.Check(u, ModuleOrder, ActionRead))

	u.Permissions = nil
	assert.False(t, a.Check(u, ModuleBill, ActionRead))
}

func TestCheckKeepsSubjectsApart(t *testing.T) {
	a := newAuthorizer(t)
	admin := &models.User{
		Base:        models.Base{ID: 1},
		Permissions: []models.Permission{{Module: ModuleUser, Actions: []string{ActionDelete}}},
	}
	assert.True(t, a.Check(admin, ModuleUser, ActionDelete))
	assert.False(t, a.Check(manager(), ModuleUser, ActionDelete))
	assert.True(t, a.Check(admin, ModuleUser, ActionDelete))
}

func TestForget(t *testing.T) {
	a := newAuthorizer(t)
	u := manager()
	require.True(t, a.Check(u, ModuleBill, ActionRead))
	a.Forget(u)
	assert.True(t, a.Check(u, ModuleBill, ActionRead))
}

func TestCheckConcurrent(t *testing.T) {
	a := newAuthorizer(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, a.Check(manager(), ModuleOrder, ActionRead))
		}()
	}
	wg.Wait()
}

func TestCanAccess(t *testing.T) {
	u := manager()
	assert.True(t, CanAccessWarehouse(u, "1"))
	assert.False(t, CanAccessWarehouse(u, "2"))
	assert.True(t, CanAccessCustomer(u, "2"))
	assert.False(t, CanAccess(u, Scope("region"), "1"))
	assert.False(t, CanAccessCustomer(nil, "1"))
}

func TestWildcardScopeAllowsAnyID(t *testing.T) {
	u := &models.User{Warehouses: []string{models.AllScope}, Customers: []string{"3", models.AllScope}}
	for _, id := range []string{"1", "999", ""} {
		assert.True(t, CanAccessWarehouse(u, id))
		assert.True(t, CanAccessCustomer(u, id))
	}
}
