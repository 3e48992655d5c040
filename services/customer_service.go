package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/xuri/excelize/v2"

	"wms-finance/models"
	"wms-finance/repositories"
)

// ImportColumns is the expected header of a customer workbook.
var ImportColumns = []string{"CODE", "NAME", "CONTACT_PERSON", "PHONE", "EMAIL", "ADDRESS", "PAYMENT_TERMS"}

type CustomerUploadResult struct {
	TotalRows     int      `json:"totalRows"`
	SuccessCount  int      `json:"successCount"`
	SkippedCount  int      `json:"skippedCount"`
	ErrorCount    int      `json:"errorCount"`
	SkippedItems  []string `json:"skippedItems"`
	ErrorMessages []string `json:"errorMessages"`
}

type CustomerService struct {
	*CRUD[models.Customer, models.CustomerPatch]
	repo     repositories.Collection[models.Customer]
	validate *validator.Validate
}

func NewCustomerService(repo repositories.Collection[models.Customer], validate *validator.Validate) *CustomerService {
	return &CustomerService{
		CRUD:     NewCRUD[models.Customer, models.CustomerPatch](repo),
		repo:     repo,
		validate: validate,
	}
}

// Import reads customers from the first sheet of an xlsx workbook. Rows
// whose code already exists are skipped; invalid rows are reported and
// the rest are still created.
func (s *CustomerService) Import(ctx context.Context, r io.Reader) (CustomerUploadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return CustomerUploadResult{}, fmt.Errorf("failed to read Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return CustomerUploadResult{}, fmt.Errorf("no sheets found in Excel file")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return CustomerUploadResult{}, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return CustomerUploadResult{}, fmt.Errorf("excel file must contain header and at least one data row")
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return CustomerUploadResult{}, err
	}
	codes := make(map[string]bool, len(existing))
	for _, c := range existing {
		codes[strings.ToUpper(c.Code)] = true
	}

	result := CustomerUploadResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}
	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		cell := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}

		customer := models.Customer{
			Code:          strings.ToUpper(cell(0)),
			Name:          cell(1),
			ContactPerson: cell(2),
			Phone:         cell(3),
			Email:         cell(4),
			Address:       cell(5),
			Status:        models.StatusActive,
		}
		if terms := cell(6); terms != "" {
			n, err := strconv.Atoi(terms)
			if err != nil {
				result.fail(fmt.Sprintf("Row %d: invalid payment terms '%s'", rowNum, terms))
				continue
			}
			customer.PaymentTerms = n
		}

		if codes[customer.Code] {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, customer.Code)
			continue
		}
		if err := s.validate.Struct(customer); err != nil {
			result.fail(fmt.Sprintf("Row %d: %s", rowNum, err.Error()))
			continue
		}
		if _, err := s.repo.Create(ctx, customer); err != nil {
			result.fail(fmt.Sprintf("Row %d: failed to create customer - %s", rowNum, err.Error()))
			continue
		}
		codes[customer.Code] = true
		result.SuccessCount++
	}
	return result, nil
}

func (r *CustomerUploadResult) fail(msg string) {
	r.ErrorCount++
	r.ErrorMessages = append(r.ErrorMessages, msg)
}
