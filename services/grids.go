package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"wms-finance/export"
	"wms-finance/models"
	"wms-finance/query"
	"wms-finance/table"
	"wms-finance/types"
)

// Column sets of the list screens. Labels follow the display locale.

type labeler struct{ zh bool }

func newLabeler(lang language.Tag) labeler {
	return labeler{zh: lang == language.Chinese}
}

func (l labeler) pick(en, zh string) string {
	if l.zh {
		return zh
	}
	return en
}

func amountRender[T any](lang language.Tag) func(any, T) string {
	return func(v any, _ T) string {
		if d, ok := v.(decimal.Decimal); ok {
			return export.Amount(lang, d)
		}
		return table.Text(v)
	}
}

func statusRender[T any](lang language.Tag, kind models.StatusKind) func(any, T) string {
	return func(v any, _ T) string {
		return models.StatusLabel(lang, kind, fmt.Sprint(v))
	}
}

func dateRender[T any](v any, _ T) string {
	switch t := v.(type) {
	case time.Time:
		return types.DateOf(t).String()
	case *time.Time:
		if t == nil {
			return ""
		}
		return types.DateOf(*t).String()
	}
	return table.Text(v)
}

func UserColumns(lang language.Tag) []table.Column[models.User] {
	l := newLabeler(lang)
	return []table.Column[models.User]{
		{Key: "username", Label: l.pick("Username", "用户名"), Sortable: true},
		{Key: "email", Label: l.pick("Email", "邮箱"), Sortable: true},
		{Key: "role", Label: l.pick("Role", "角色"), Sortable: true},
		{Key: "status", Label: l.pick("Status", "状态"), Render: statusRender[models.User](lang, models.KindUser)},
		{Key: "lastLogin", Label: l.pick("Last login", "最后登录"), Sortable: true, Render: dateRender[models.User]},
	}
}

func WarehouseColumns(lang language.Tag) []table.Column[models.Warehouse] {
	l := newLabeler(lang)
	return []table.Column[models.Warehouse]{
		{Key: "code", Label: l.pick("Code", "仓库编码"), Sortable: true},
		{Key: "name", Label: l.pick("Name", "仓库名称"), Sortable: true},
		{Key: "address", Label: l.pick("Address", "地址")},
		{Key: "manager", Label: l.pick("Manager", "负责人")},
		{Key: "capacity", Label: l.pick("Capacity used", "容量使用"), Sortable: true, Render: func(_ any, w models.Warehouse) string {
			return fmt.Sprintf("%d/%d (%.0f%%)", w.UsedCapacity, w.Capacity, w.Utilization())
		}},
		{Key: "utilization", Label: l.pick("Load", "负载"), Render: func(_ any, w models.Warehouse) string {
			switch query.LevelOf(w.Utilization()) {
			case query.UtilizationHigh:
				return l.pick("High", "高")
			case query.UtilizationMedium:
				return l.pick("Medium", "中")
			}
			return l.pick("Low", "低")
		}},
		{Key: "status", Label: l.pick("Status", "状态"), Render: statusRender[models.Warehouse](lang, models.KindWarehouse)},
	}
}

func CustomerColumns(lang language.Tag) []table.Column[models.Customer] {
	l := newLabeler(lang)
	return []table.Column[models.Customer]{
		{Key: "code", Label: l.pick("Code", "货主编码"), Sortable: true},
		{Key: "name", Label: l.pick("Name", "货主名称"), Sortable: true},
		{Key: "contactPerson", Label: l.pick("Contact", "联系人")},
		{Key: "phone", Label: l.pick("Phone", "电话")},
		{Key: "email", Label: l.pick("Email", "邮箱")},
		{Key: "paymentTerms", Label: l.pick("Payment terms", "账期"), Sortable: true, Render: func(v any, _ models.Customer) string {
			return fmt.Sprintf("%v %s", v, l.pick("days", "天"))
		}},
		{Key: "status", Label: l.pick("Status", "状态"), Render: statusRender[models.Customer](lang, models.KindCustomer)},
	}
}

func OrderColumns(lang language.Tag) []table.Column[models.Order] {
	l := newLabeler(lang)
	return []table.Column[models.Order]{
		{Key: "orderNumber", Label: l.pick("Order number", "订单号"), Sortable: true},
		{Key: "customerName", Label: l.pick("Customer", "货主"), Sortable: true},
		{Key: "warehouseName", Label: l.pick("Warehouse", "仓库"), Sortable: true},
		{Key: "orderType", Label: l.pick("Type", "类型"), Render: func(v any, _ models.Order) string {
			if v == models.OrderInbound {
				return l.pick("Inbound", "入库")
			}
			return l.pick("Outbound", "出库")
		}},
		{Key: "quantity", Label: l.pick("Quantity", "数量"), Sortable: true},
		{Key: "palletCount", Label: l.pick("Pallets", "板位数"), Sortable: true},
		{Key: "status", Label: l.pick("Status", "状态"), Render: statusRender[models.Order](lang, models.KindOrder)},
		{Key: "createdAt", Label: l.pick("Created", "创建时间"), Sortable: true, Render: dateRender[models.Order]},
		{Key: "completedAt", Label: l.pick("Completed", "完成时间"), Sortable: true, Render: dateRender[models.Order]},
	}
}

func FeeConfigColumns(lang language.Tag) []table.Column[models.FeeConfig] {
	l := newLabeler(lang)
	return []table.Column[models.FeeConfig]{
		{Key: "name", Label: l.pick("Name", "费用名称"), Sortable: true},
		{Key: "type", Label: l.pick("Type", "费用类型"), Sortable: true},
		{Key: "unit", Label: l.pick("Unit", "计费单位")},
		{Key: "basePrice", Label: l.pick("Base price", "基础价格"), Sortable: true, Render: amountRender[models.FeeConfig](lang)},
		{Key: "description", Label: l.pick("Description", "说明")},
		{Key: "isActive", Label: l.pick("Status", "状态"), Render: func(v any, _ models.FeeConfig) string {
			if v == true {
				return l.pick("Enabled", "启用")
			}
			return l.pick("Disabled", "停用")
		}},
	}
}

func BillColumns(lang language.Tag) []table.Column[models.Bill] {
	l := newLabeler(lang)
	amount := amountRender[models.Bill](lang)
	return []table.Column[models.Bill]{
		{Key: "billNumber", Label: l.pick("Bill number", "账单号"), Sortable: true},
		{Key: "customerName", Label: l.pick("Customer", "货主"), Sortable: true},
		{Key: "warehouseName", Label: l.pick("Warehouse", "仓库"), Sortable: true},
		{Key: "periodStart", Label: l.pick("Period start", "账期开始"), Sortable: true},
		{Key: "periodEnd", Label: l.pick("Period end", "账期结束"), Sortable: true},
		{Key: "storageFees", Label: l.pick("Storage fees", "仓储费"), Sortable: true, Render: amount},
		{Key: "operationFees", Label: l.pick("Operation fees", "操作费"), Sortable: true, Render: amount},
		{Key: "extraFees", Label: l.pick("Extra fees", "额外费用"), Sortable: true, Render: amount},
		{Key: "totalAmount", Label: l.pick("Total", "总金额"), Sortable: true, Render: amount},
		{Key: "status", Label: l.pick("Status", "状态"), Render: statusRender[models.Bill](lang, models.KindBill)},
		{Key: "createdAt", Label: l.pick("Created", "创建时间"), Sortable: true, Render: dateRender[models.Bill]},
	}
}
