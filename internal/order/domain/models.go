package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// OrderKind distinguishes the three billable engagement types.
type OrderKind string

const (
	OrderKindRental       OrderKind = "RENTAL"
	OrderKindSubscription OrderKind = "SUBSCRIPTION"
	OrderKindEvent        OrderKind = "EVENT"
)

// OrderStatus represents order lifecycle states.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusInvoiced  OrderStatus = "INVOICED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a rental/subscription/event engagement to be billed.
type Order struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"not null;index" json:"organization_id"`
	CustomerID snowflake.ID `gorm:"not null;index" json:"customer_id"`
	OutletID   snowflake.ID `gorm:"not null" json:"outlet_id"`
	Kind       OrderKind    `gorm:"type:text;not null" json:"kind"`
	Status     OrderStatus  `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	PeriodStart *time.Time  `gorm:"" json:"period_start,omitempty"`
	PeriodEnd   *time.Time  `gorm:"" json:"period_end,omitempty"`
	Notes       string      `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []OrderItem `gorm:"-" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// OrderItem is a billable line on an order. GSTRate is resolved at create
// time, either from the request or from the inventory item's default.
type OrderItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID    `gorm:"not null;index" json:"organization_id"`
	OrderID     snowflake.ID    `gorm:"not null;index" json:"order_id"`
	ItemID      *snowflake.ID   `gorm:"column:item_id" json:"item_id,omitempty"`
	Description string          `gorm:"type:text;not null" json:"description"`
	HSNCode     string          `gorm:"column:hsn_code;type:text" json:"hsn_code,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"quantity"`
	UnitRate    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_rate"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate;type:numeric(6,2);not null" json:"gst_rate"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (OrderItem) TableName() string { return "order_items" }
