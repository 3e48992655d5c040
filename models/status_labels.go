package models

import "golang.org/x/text/language"

// StatusKind selects the badge vocabulary of an entity type.
type StatusKind string

const (
	KindUser      StatusKind = "user"
	KindWarehouse StatusKind = "warehouse"
	KindCustomer  StatusKind = "customer"
	KindOrder     StatusKind = "order"
	KindBill      StatusKind = "bill"
)

var labelMatcher = language.NewMatcher([]language.Tag{language.English, language.Chinese})

var statusLabels = map[language.Tag]map[StatusKind]map[string]string{
	language.English: {
		KindUser:      {"active": "Active", "inactive": "Disabled"},
		KindWarehouse: {"active": "Active", "inactive": "Suspended"},
		KindCustomer:  {"active": "Active", "inactive": "Suspended"},
		KindOrder:     {"pending": "Pending", "processing": "Processing", "completed": "Completed", "cancelled": "Cancelled"},
		KindBill:      {"draft": "Draft", "sent": "Sent", "paid": "Paid", "overdue": "Overdue"},
	},
	language.Chinese: {
		KindUser:      {"active": "正常", "inactive": "禁用"},
		KindWarehouse: {"active": "正常", "inactive": "停用"},
		KindCustomer:  {"active": "正常", "inactive": "停用"},
		KindOrder:     {"pending": "待处理", "processing": "处理中", "completed": "已完成", "cancelled": "已取消"},
		KindBill:      {"draft": "草稿", "sent": "已发送", "paid": "已支付", "overdue": "逾期"},
	},
}

// MatchLocale resolves a DISPLAY_LOCALE value to one of the supported
// label languages, falling back to English.
func MatchLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, index, _ := labelMatcher.Match(tag)
	if index == 1 {
		return language.Chinese
	}
	return language.English
}

// StatusLabel returns the display text of a status. Unknown values are
// returned unchanged.
func StatusLabel(lang language.Tag, kind StatusKind, status string) string {
	if label, ok := statusLabels[lang][kind][status]; ok {
		return label
	}
	return status
}
