package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateItemRequest struct {
	SKU           string
	Name          string
	HSNCode       string
	GSTRate       decimal.Decimal
	UnitPrice     decimal.Decimal
	StockQuantity decimal.Decimal
}

type UpdateItemRequest struct {
	ID            string
	Name          *string
	HSNCode       *string
	GSTRate       *decimal.Decimal
	UnitPrice     *decimal.Decimal
	StockQuantity *decimal.Decimal
}

// ItemResponse pairs an item with the advisory verdict on its GST rate.
// Non-standard rates are stored as-is; the warning is surfaced to the UI.
type ItemResponse struct {
	Item
	RateWarning string `json:"rate_warning,omitempty"`
}

type Service interface {
	Create(context.Context, CreateItemRequest) (ItemResponse, error)
	Update(context.Context, UpdateItemRequest) (ItemResponse, error)
	List(context.Context) ([]ItemResponse, error)
	GetByID(ctx context.Context, id string) (ItemResponse, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *Item) error
	Update(ctx context.Context, db *gorm.DB, item *Item) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Item, error)
	ListByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]Item, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidSKU          = errors.New("invalid_sku")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidGSTRate      = errors.New("invalid_gst_rate")
	ErrInvalidUnitPrice    = errors.New("invalid_unit_price")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidID           = errors.New("invalid_id")
	ErrDuplicateSKU        = errors.New("duplicate_sku")
	ErrNotFound            = errors.New("not_found")
)
