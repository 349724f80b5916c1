package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RecordPaymentRequest struct {
	InvoiceID  string
	Amount     decimal.Decimal
	Method     PaymentMethod
	Reference  string
	ReceivedAt *time.Time
}

type Service interface {
	Record(context.Context, RecordPaymentRequest) (Payment, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]Payment, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	ListByInvoice(ctx context.Context, db *gorm.DB, orgID, invoiceID snowflake.ID) ([]Payment, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidMethod       = errors.New("invalid_method")
	ErrInvoiceNotFound     = errors.New("invoice_not_found")
	ErrInvoiceNotOpen      = errors.New("invoice_not_open")
	ErrOverpayment         = errors.New("overpayment")
	ErrDuplicateReference  = errors.New("duplicate_reference")
)
