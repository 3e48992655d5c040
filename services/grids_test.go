package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"wms-finance/database"
	"wms-finance/table"
)

func TestBillGrid(t *testing.T) {
	grid := table.Build(database.SeedBills(), BillColumns(language.English), nil, false)
	require.Len(t, grid.Headers, 11)
	require.Len(t, grid.Rows, 2)

	cells := grid.Rows[0].Cells
	assert.Equal(t, "BILL202412001", cells[0].Text)
	assert.Equal(t, "2024-12-01", cells[3].Text)
	assert.Equal(t, "¥15,000.00", cells[5].Text)
	assert.Equal(t, "¥19,200.00", cells[8].Text)
	assert.Equal(t, "Sent", cells[9].Text)
	assert.Equal(t, "2024-12-19", cells[10].Text)
}

func TestChineseLabels(t *testing.T) {
	grid := table.Build(database.SeedOrders(), OrderColumns(language.Chinese), nil, false)
	assert.Equal(t, "订单号", grid.Headers[0].Label)
	assert.Equal(t, "入库", grid.Rows[0].Cells[3].Text)
	assert.Equal(t, "已完成", grid.Rows[0].Cells[6].Text)
	assert.Equal(t, "", grid.Rows[1].Cells[8].Text)
}

func TestWarehouseCapacityCell(t *testing.T) {
	grid := table.Build(database.SeedWarehouses(), WarehouseColumns(language.English), nil, false)
	assert.Equal(t, "750/1000 (75%)", grid.Rows[0].Cells[4].Text)
	assert.Equal(t, "Medium", grid.Rows[0].Cells[5].Text)
}
