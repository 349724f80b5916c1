// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/internal/gst"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusOpen  InvoiceStatus = "OPEN"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
	InvoiceStatusVoid  InvoiceStatus = "VOID"
)

// Invoice is a generated tax invoice. The GST totals are computed by the
// tax kernel at generation time and never recomputed in place; voiding and
// regenerating is the only way to change them.
type Invoice struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_invoices_org_number,priority:1" json:"organization_id"`
	OrderID    snowflake.ID  `gorm:"not null;uniqueIndex:ux_invoices_order" json:"order_id"`
	CustomerID snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	OutletID   snowflake.ID  `gorm:"not null" json:"outlet_id"`
	Number     int64         `gorm:"not null;uniqueIndex:ux_invoices_org_number,priority:2" json:"number"`
	Status     InvoiceStatus `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	Region     gst.Region    `gorm:"type:text;not null" json:"region"`

	TaxableValue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"taxable_value"`
	CGST         decimal.Decimal `gorm:"column:cgst;type:numeric(14,2);not null" json:"cgst"`
	SGST         decimal.Decimal `gorm:"column:sgst;type:numeric(14,2);not null" json:"sgst"`
	IGST         decimal.Decimal `gorm:"column:igst;type:numeric(14,2);not null" json:"igst"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	AmountPaid   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount_paid"`

	IssuedAt   *time.Time `gorm:"" json:"issued_at,omitempty"`
	PaidAt     *time.Time `gorm:"" json:"paid_at,omitempty"`
	VoidedAt   *time.Time `gorm:"" json:"voided_at,omitempty"`
	VoidReason string     `gorm:"type:text" json:"void_reason,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line of an invoice with its audit-exact tax split.
type InvoiceItem struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID  `gorm:"not null;index" json:"organization_id"`
	InvoiceID   snowflake.ID  `gorm:"not null;index" json:"invoice_id"`
	OrderItemID *snowflake.ID `gorm:"column:order_item_id" json:"order_item_id,omitempty"`
	Description string        `gorm:"type:text;not null" json:"description"`
	HSNCode     string        `gorm:"column:hsn_code;type:text" json:"hsn_code,omitempty"`

	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"quantity"`
	UnitRate  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_rate"`
	GSTRate   decimal.Decimal `gorm:"column:gst_rate;type:numeric(6,2);not null" json:"gst_rate"`
	Taxable   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"taxable"`
	CGST      decimal.Decimal `gorm:"column:cgst;type:numeric(14,2);not null" json:"cgst"`
	SGST      decimal.Decimal `gorm:"column:sgst;type:numeric(14,2);not null" json:"sgst"`
	IGST      decimal.Decimal `gorm:"column:igst;type:numeric(14,2);not null" json:"igst"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"line_total"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceCounter backs the org-scoped sequential invoice number.
type InvoiceCounter struct {
	OrgID      snowflake.ID `gorm:"primaryKey" json:"organization_id"`
	NextNumber int64        `gorm:"not null" json:"next_number"`
}

// TableName sets the database table name.
func (InvoiceCounter) TableName() string { return "invoice_counters" }
