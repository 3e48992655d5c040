package services

import (
	"golang.org/x/text/language"

	"wms-finance/authz"
	"wms-finance/models"
)

type MenuService struct {
	authz *authz.Authorizer
	tree  []models.MenuItem
}

func NewMenuService(a *authz.Authorizer, lang language.Tag) *MenuService {
	return &MenuService{authz: a, tree: menuTree(lang)}
}

// MenusFor returns the sidebar visible to identity. Items with a
// permission need read access on it; groups left without children are
// dropped.
func (s *MenuService) MenusFor(identity *models.User) []models.MenuItem {
	return s.filter(identity, s.tree)
}

func (s *MenuService) filter(identity *models.User, items []models.MenuItem) []models.MenuItem {
	out := []models.MenuItem{}
	for _, item := range items {
		if item.Permission != "" && !s.authz.Check(identity, item.Permission, authz.ActionRead) {
			continue
		}
		if len(item.Children) > 0 {
			item.Children = s.filter(identity, item.Children)
			if len(item.Children) == 0 {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

var menuLabels = map[language.Tag]map[string]string{
	language.English: {
		"dashboard":       "Dashboard",
		"user-management": "Users",
		"basic-info":      "Basic information",
		"warehouses":      "Warehouses",
		"customers":       "Customers",
		"orders":          "Orders",
		"fee-management":  "Fees",
		"fee-configs":     "Fee configuration",
		"bills":           "Bills",
	},
	language.Chinese: {
		"dashboard":       "仪表板",
		"user-management": "用户管理",
		"basic-info":      "基础信息",
		"warehouses":      "仓库管理",
		"customers":       "货主管理",
		"orders":          "订单数据",
		"fee-management":  "费用管理",
		"fee-configs":     "费用字段管理",
		"bills":           "财务账单查询",
	},
}

func menuTree(lang language.Tag) []models.MenuItem {
	labels, ok := menuLabels[lang]
	if !ok {
		labels = menuLabels[language.English]
	}
	item := func(id, icon, path, permission string, children ...models.MenuItem) models.MenuItem {
		return models.MenuItem{ID: id, Label: labels[id], Icon: icon, Path: path, Permission: permission, Children: children}
	}
	return []models.MenuItem{
		item("dashboard", "BarChart3", "dashboard", ""),
		item("user-management", "Users", "users", authz.ModuleUser),
		item("basic-info", "Settings", "", "",
			item("warehouses", "Warehouse", "warehouses", authz.ModuleWarehouse),
			item("customers", "Building2", "customers", authz.ModuleCustomer),
		),
		item("orders", "Package", "orders", ""),
		item("fee-management", "DollarSign", "", "",
			item("fee-configs", "Settings", "fee-configs", authz.ModuleFee),
		),
		item("bills", "FileText", "bills", authz.ModuleBill),
	}
}
