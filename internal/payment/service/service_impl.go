package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	obsmetrics "github.com/rentline/rentline/internal/observability/metrics"
	"github.com/rentline/rentline/internal/orgcontext"
	"github.com/rentline/rentline/internal/payment/domain"
	"github.com/rentline/rentline/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

type invoiceRow struct {
	ID          snowflake.ID    `gorm:"column:id"`
	Status      string          `gorm:"column:status"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
	AmountPaid  decimal.Decimal `gorm:"column:amount_paid"`
}

// Record stores a payment against an open invoice. The whole check runs in
// one transaction: the outstanding balance is re-read, overpayment is
// rejected, and the invoice flips to PAID exactly when the balance hits
// zero.
func (s *Service) Record(ctx context.Context, req domain.RecordPaymentRequest) (domain.Payment, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Payment{}, domain.ErrInvalidOrganization
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil || invoiceID == 0 {
		return domain.Payment{}, domain.ErrInvalidID
	}

	if !req.Amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	switch req.Method {
	case domain.PaymentMethodCash, domain.PaymentMethodUPI,
		domain.PaymentMethodCard, domain.PaymentMethodTransfer:
	default:
		return domain.Payment{}, domain.ErrInvalidMethod
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = uuid.NewString()
	}

	receivedAt := time.Now().UTC()
	if req.ReceivedAt != nil {
		receivedAt = req.ReceivedAt.UTC()
	}

	payment := domain.Payment{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		InvoiceID:  invoiceID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  reference,
		ReceivedAt: receivedAt,
		CreatedAt:  time.Now().UTC(),
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row invoiceRow
		err := tx.Raw(
			`SELECT id, status, total_amount, amount_paid FROM invoices WHERE org_id = ? AND id = ?`,
			orgID, invoiceID,
		).Scan(&row).Error
		if err != nil {
			return err
		}
		if row.ID == 0 {
			return domain.ErrInvoiceNotFound
		}
		if row.Status != "OPEN" {
			return domain.ErrInvoiceNotOpen
		}

		outstanding := row.TotalAmount.Sub(row.AmountPaid)
		if req.Amount.GreaterThan(outstanding) {
			return domain.ErrOverpayment
		}

		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateReference
			}
			return err
		}

		newPaid := row.AmountPaid.Add(req.Amount)
		now := time.Now().UTC()
		if newPaid.Equal(row.TotalAmount) {
			return tx.Exec(
				`UPDATE invoices SET amount_paid = ?, status = 'PAID', paid_at = ?, updated_at = ? WHERE org_id = ? AND id = ?`,
				newPaid, now, now, orgID, invoiceID,
			).Error
		}
		return tx.Exec(
			`UPDATE invoices SET amount_paid = ?, updated_at = ? WHERE org_id = ? AND id = ?`,
			newPaid, now, orgID, invoiceID,
		).Error
	})
	if txErr != nil {
		return domain.Payment{}, txErr
	}

	obsmetrics.Invoice().RecordPayment()
	s.log.Info("payment recorded",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("method", string(payment.Method)),
	)

	return payment, nil
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(invoiceID))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	return s.repo.ListByInvoice(ctx, s.db, orgID, parsed)
}
