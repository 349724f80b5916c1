package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Item is a rentable or sellable inventory entry. GSTRate is the default
// percentage applied when the item lands on an order line; order lines may
// override it.
type Item struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID    `gorm:"not null;uniqueIndex:ux_inventory_org_sku" json:"organization_id"`
	SKU           string          `gorm:"column:sku;type:text;not null;uniqueIndex:ux_inventory_org_sku" json:"sku"`
	Name          string          `gorm:"not null" json:"name"`
	HSNCode       string          `gorm:"column:hsn_code;type:text" json:"hsn_code,omitempty"`
	GSTRate       decimal.Decimal `gorm:"column:gst_rate;type:numeric(6,2);not null" json:"gst_rate"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	StockQuantity decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"stock_quantity"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Item) TableName() string { return "inventory_items" }
