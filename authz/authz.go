// Package authz answers whether an identity may perform an action on a
// module and whether it may see a given warehouse or customer.
package authz

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"

	"wms-finance/models"
)

const (
	ModuleUser      = "user"
	ModuleWarehouse = "warehouse"
	ModuleCustomer  = "customer"
	ModuleOrder     = "order"
	ModuleFee       = "fee"
	ModuleBill      = "bill"
)

const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

// Scope names a scoped id list on the identity.
type Scope string

const (
	ScopeWarehouse Scope = "warehouse"
	ScopeCustomer  Scope = "customer"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Authorizer evaluates permission entries with a casbin enforcer. Each
// identity's entries are loaded as policies under its id and reloaded
// whenever the entries passed in differ from the last load.
type Authorizer struct {
	mu       sync.Mutex
	enforcer *casbin.Enforcer
	loaded   map[string]string
	logger   *zap.Logger
}

func New(logger *zap.Logger) (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to load authorization model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize casbin enforcer: %w", err)
	}
	return &Authorizer{
		enforcer: enforcer,
		loaded:   make(map[string]string),
		logger:   logger,
	}, nil
}

// Check reports whether identity holds action on module. A nil identity
// holds nothing. Role plays no part.
func (a *Authorizer) Check(identity *models.User, module, action string) bool {
	if identity == nil {
		return false
	}
	sub := identity.ID.String()

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.sync(sub, identity.Permissions); err != nil {
		a.logger.Error("failed to load permissions", zap.String("subject", sub), zap.Error(err))
		return false
	}
	allowed, err := a.enforcer.Enforce(sub, module, action)
	if err != nil {
		a.logger.Error("permission check failed", zap.String("subject", sub), zap.Error(err))
		return false
	}
	return allowed
}

// Forget drops the policies loaded for identity.
func (a *Authorizer) Forget(identity *models.User) {
	if identity == nil {
		return
	}
	sub := identity.ID.String()
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.enforcer.RemoveFilteredPolicy(0, sub); err != nil {
		a.logger.Warn("failed to drop permissions", zap.String("subject", sub), zap.Error(err))
	}
	delete(a.loaded, sub)
}

func (a *Authorizer) sync(sub string, perms []models.Permission) error {
	rules := policyRules(sub, perms)
	fp := fingerprint(rules)
	if prev, ok := a.loaded[sub]; ok && prev == fp {
		return nil
	}
	if _, err := a.enforcer.RemoveFilteredPolicy(0, sub); err != nil {
		return err
	}
	if len(rules) > 0 {
		if _, err := a.enforcer.AddPolicies(rules); err != nil {
			return err
		}
	}
	a.loaded[sub] = fp
	return nil
}

func policyRules(sub string, perms []models.Permission) [][]string {
	var rules [][]string
	seen := make(map[string]bool)
	for _, p := range perms {
		for _, act := range p.Actions {
			key := p.Module + "\x00" + act
			if seen[key] {
				continue
			}
			seen[key] = true
			rules = append(rules, []string{sub, p.Module, act})
		}
	}
	return rules
}

func fingerprint(rules [][]string) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r[1] + ":" + r[2]
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

// CanAccess reports whether id is in identity's list for scope, either
// directly or through the "all" wildcard.
func CanAccess(identity *models.User, scope Scope, id string) bool {
	if identity == nil {
		return false
	}
	var list []string
	switch scope {
	case ScopeWarehouse:
		list = identity.Warehouses
	case ScopeCustomer:
		list = identity.Customers
	default:
		return false
	}
	return slices.Contains(list, models.AllScope) || slices.Contains(list, id)
}

func CanAccessWarehouse(identity *models.User, id string) bool {
	return CanAccess(identity, ScopeWarehouse, id)
}

func CanAccessCustomer(identity *models.User, id string) bool {
	return CanAccess(identity, ScopeCustomer, id)
}
