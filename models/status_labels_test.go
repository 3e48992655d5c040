package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Disabled", StatusLabel(language.English, KindUser, "inactive"))
	assert.Equal(t, "Suspended", StatusLabel(language.English, KindWarehouse, "inactive"))
	assert.Equal(t, "已支付", StatusLabel(language.Chinese, KindBill, "paid"))
	assert.Equal(t, "archived", StatusLabel(language.English, KindBill, "archived"))
}

func TestMatchLocale(t *testing.T) {
	assert.Equal(t, language.Chinese, MatchLocale("zh-CN"))
	assert.Equal(t, language.English, MatchLocale("en-US"))
	assert.Equal(t, language.English, MatchLocale("not a locale!"))
}
