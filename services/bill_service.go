package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"wms-finance/export"
	"wms-finance/mailer"
	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/types"
)

type BillService struct {
	repo         repositories.Collection[models.Bill]
	refs         references
	mailer       mailer.Mailer
	enforceTotal bool
	lang         language.Tag
	now          func() time.Time
	logger       *zap.Logger
}

type BillServiceOptions struct {
	// EnforceTotal rejects bills whose total is not the sum of their fees.
	EnforceTotal bool
	Lang         language.Tag
}

func NewBillService(repo repositories.Collection[models.Bill], customers repositories.Collection[models.Customer], warehouses repositories.Collection[models.Warehouse], m mailer.Mailer, opts BillServiceOptions, logger *zap.Logger) *BillService {
	return &BillService{
		repo:         repo,
		refs:         references{customers: customers, warehouses: warehouses},
		mailer:       m,
		enforceTotal: opts.EnforceTotal,
		lang:         opts.Lang,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *BillService) List(ctx context.Context) ([]models.Bill, error) {
	return s.repo.List(ctx)
}

func (s *BillService) Get(ctx context.Context, id types.SnowflakeID) (models.Bill, bool, error) {
	return s.repo.Get(ctx, id)
}

func (s *BillService) check(b models.Bill) error {
	if err := b.Check(); err != nil {
		return err
	}
	if s.enforceTotal && !b.TotalMatches() {
		return ErrBillTotalMismatch
	}
	return nil
}

func (s *BillService) Create(ctx context.Context, b models.Bill) (models.Bill, error) {
	if err := s.check(b); err != nil {
		return b, err
	}
	cName, wName, err := s.refs.names(ctx, &b.CustomerID, &b.WarehouseID)
	if err != nil {
		return b, err
	}
	b.CustomerName, b.WarehouseName = *cName, *wName
	if b.Status == models.BillPaid && b.PaidAt == nil {
		now := s.now()
		b.PaidAt = &now
	}
	return s.repo.Create(ctx, b)
}

// Update validates the merged record before storing the patch.
func (s *BillService) Update(ctx context.Context, id types.SnowflakeID, patch models.BillPatch) (models.Bill, bool, error) {
	current, found, err := s.repo.Get(ctx, id)
	if err != nil || !found {
		return current, found, err
	}
	merged := current
	patch.Apply(&merged)
	if err := s.check(merged); err != nil {
		return current, true, err
	}

	cName, wName, err := s.refs.names(ctx, patch.CustomerID, patch.WarehouseID)
	if err != nil {
		return current, true, err
	}
	patch.CustomerName, patch.WarehouseName = cName, wName
	if merged.Status == models.BillPaid && merged.PaidAt == nil {
		now := s.now()
		patch.PaidAt = &now
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *BillService) Delete(ctx context.Context, id types.SnowflakeID) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Send mails the bill to its customer and marks it sent. Paid bills
// cannot be sent again. A customer without an e-mail address only gets
// the status change.
func (s *BillService) Send(ctx context.Context, id types.SnowflakeID) (models.Bill, bool, error) {
	b, found, err := s.repo.Get(ctx, id)
	if err != nil || !found {
		return b, found, err
	}
	if b.Status == models.BillPaid {
		return b, true, ErrBillState
	}

	customer, err := s.refs.customer(ctx, b.CustomerID)
	if err != nil {
		return b, true, err
	}
	if customer.Email == "" {
		s.logger.Warn("customer has no e-mail address, bill not mailed",
			zap.String("bill", b.BillNumber), zap.String("customer", customer.Code))
	} else {
		var attachment bytes.Buffer
		if err := export.WriteCSV(&attachment, []models.Bill{b}, s.lang, export.UTF8); err != nil {
			return b, true, err
		}
		name := fmt.Sprintf("%s.csv", b.BillNumber)
		if err := s.mailer.SendBill(customer.Email, b, name, attachment.Bytes()); err != nil {
			return b, true, err
		}
	}

	status := models.BillSent
	return s.repo.Update(ctx, id, models.BillPatch{Status: &status})
}

// Pay settles a sent or overdue bill and stamps PaidAt.
func (s *BillService) Pay(ctx context.Context, id types.SnowflakeID) (models.Bill, bool, error) {
	b, found, err := s.repo.Get(ctx, id)
	if err != nil || !found {
		return b, found, err
	}
	if b.Status != models.BillSent && b.Status != models.BillOverdue {
		return b, true, ErrBillState
	}
	status := models.BillPaid
	now := s.now()
	return s.repo.Update(ctx, id, models.BillPatch{Status: &status, PaidAt: &now})
}
