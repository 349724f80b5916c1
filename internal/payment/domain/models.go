package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted settlement channels.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodUPI      PaymentMethod = "UPI"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "BANK_TRANSFER"
)

// Payment is money received against a finalized invoice. The recording
// transaction refuses anything beyond the outstanding balance.
type Payment struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID    `gorm:"not null;uniqueIndex:ux_payments_reference" json:"organization_id"`
	InvoiceID snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Method    PaymentMethod   `gorm:"type:text;not null" json:"method"`
	Reference string          `gorm:"type:text;not null;uniqueIndex:ux_payments_reference" json:"reference"`

	ReceivedAt time.Time `gorm:"not null" json:"received_at"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
