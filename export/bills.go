// Package export writes bill lists as CSV or XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"wms-finance/models"
	"wms-finance/types"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

type Encoding string

const (
	UTF8 Encoding = "utf-8"
	GBK  Encoding = "gbk"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "gbk", "GBK":
		return GBK, nil
	}
	return "", fmt.Errorf("unsupported encoding %q", s)
}

var headers = map[language.Tag][]string{
	language.English: {"Bill Number", "Customer", "Warehouse", "Period Start", "Period End", "Storage Fee", "Operation Fee", "Extra Fee", "Total", "Status"},
	language.Chinese: {"账单号", "货主", "仓库", "账期开始", "账期结束", "仓储费", "操作费", "额外费用", "总金额", "状态"},
}

// Header returns the fixed column titles in lang, English when lang has none.
func Header(lang language.Tag) []string {
	if h, ok := headers[lang]; ok {
		return h
	}
	return headers[language.English]
}

// Row is one bill in export column order. Text cells are passed through
// textCell.
func Row(b models.Bill) []string {
	return []string{
		textCell(b.BillNumber),
		textCell(b.CustomerName),
		textCell(b.WarehouseName),
		b.PeriodStart.String(),
		b.PeriodEnd.String(),
		b.StorageFees.String(),
		b.OperationFees.String(),
		b.ExtraFees.String(),
		b.TotalAmount.String(),
		string(b.Status),
	}
}

// textCell prefixes values a spreadsheet would evaluate as a formula with
// a single quote.
func textCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

// Filename is bills_<date>.<format>, dated by now.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("bills_%s.%s", types.DateOf(now).String(), format)
}

func ContentType(format Format, enc Encoding) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if enc == GBK {
		return "text/csv; charset=gbk"
	}
	return "text/csv; charset=utf-8"
}

// WriteCSV writes the header and one row per bill. With GBK, characters
// the code page cannot hold are replaced rather than failing the export.
func WriteCSV(w io.Writer, bills []models.Bill, lang language.Tag, enc Encoding) error {
	var closer io.Closer
	if enc == GBK {
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(simplifiedchinese.GBK.NewEncoder()))
		w, closer = tw, tw
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header(lang)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range bills {
		if err := cw.Write(Row(b)); err != nil {
			return fmt.Errorf("write bill %s: %w", b.BillNumber, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if closer != nil {
		return closer.Close()
	}
	return nil
}

// WriteXLSX writes the same table to a single-sheet workbook. Amounts are
// written as numbers so spreadsheets can sum them.
func WriteXLSX(w io.Writer, bills []models.Bill, lang language.Tag) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	for i, title := range Header(lang) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for r, b := range bills {
		row := r + 2
		values := []interface{}{
			b.BillNumber,
			b.CustomerName,
			b.WarehouseName,
			b.PeriodStart.String(),
			b.PeriodEnd.String(),
			b.StorageFees.InexactFloat64(),
			b.OperationFees.InexactFloat64(),
			b.ExtraFees.InexactFloat64(),
			b.TotalAmount.InexactFloat64(),
			string(b.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write bill %s: %w", b.BillNumber, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
