package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/language"

	"wms-finance/models"
	"wms-finance/types"
)

func sampleBills() []models.Bill {
	return []models.Bill{{
		BillNumber:    "BILL202401001",
		CustomerName:  "上海贸易, 有限公司",
		WarehouseName: "上海中心仓",
		PeriodStart:   types.NewDate(2024, 1, 1),
		PeriodEnd:     types.NewDate(2024, 1, 31),
		StorageFees:   decimal.NewFromInt(12000),
		OperationFees: decimal.NewFromInt(4800),
		ExtraFees:     decimal.NewFromInt(2400),
		TotalAmount:   decimal.NewFromInt(19200),
		Status:        models.BillSent,
	}}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBills(), language.English, UTF8))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Header(language.English), records[0])
	assert.Equal(t, []string{
		"BILL202401001", "上海贸易, 有限公司", "上海中心仓", "2024-01-01", "2024-01-31",
		"12000", "4800", "2400", "19200", "sent",
	}, records[1])
}

func TestWriteCSVQuotesFormulaCells(t *testing.T) {
	bills := sampleBills()
	bills[0].BillNumber = "=HYPERLINK(\"http://x\")"
	bills[0].CustomerName = "@SUM(A1)"
	bills[0].WarehouseName = "-1+2"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, bills, language.English, UTF8))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", records[1][0])
	assert.Equal(t, "'@SUM(A1)", records[1][1])
	assert.Equal(t, "'-1+2", records[1][2])
	assert.Equal(t, "19200", records[1][8])
}

func TestWriteCSVEmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, language.Chinese, UTF8))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "账单号", records[0][0])
}

func TestWriteCSVGBK(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBills(), language.Chinese, GBK))

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(buf.Bytes())
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(decoded)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "上海中心仓", records[1][2])
	assert.NotEqual(t, decoded, buf.Bytes())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleBills(), language.English))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bill Number", rows[0][0])
	assert.Equal(t, "BILL202401001", rows[1][0])
	assert.Equal(t, "19200", rows[1][8])
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 2, 3, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "bills_2024-02-03.csv", Filename(FormatCSV, now))
	assert.Equal(t, "bills_2024-02-03.xlsx", Filename(FormatXLSX, now))
}

func TestParse(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	e, err := ParseEncoding("gbk")
	require.NoError(t, err)
	assert.Equal(t, GBK, e)
	_, err = ParseEncoding("latin1")
	assert.Error(t, err)
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "¥19,200.00", Amount(language.English, decimal.NewFromInt(19200)))
}
