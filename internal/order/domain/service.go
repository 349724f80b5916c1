package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderLine struct {
	ItemID      string
	Description string
	Quantity    decimal.Decimal
	UnitRate    *decimal.Decimal
	GSTRate     *decimal.Decimal
}

type CreateOrderRequest struct {
	CustomerID  string
	OutletID    string
	Kind        OrderKind
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Notes       string
	Lines       []CreateOrderLine
}

type ListOrderRequest struct {
	PageToken  string
	PageSize   int32
	CustomerID string
	Status     string
	Kind       string
}

type ListOrderFilter struct {
	CustomerID snowflake.ID
	Status     OrderStatus
	Kind       OrderKind
}

type ListOrderResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}

type Service interface {
	Create(context.Context, CreateOrderRequest) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	List(context.Context, ListOrderRequest) (ListOrderResponse, error)
	Confirm(ctx context.Context, id string) (Order, error)
	Cancel(ctx context.Context, id string) (Order, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order, items []OrderItem) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Order, error)
	ListItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderItem, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListOrderFilter, page pagination.Pagination) ([]*Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, from, to OrderStatus) (bool, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCustomer     = errors.New("invalid_customer")
	ErrInvalidOutlet       = errors.New("invalid_outlet")
	ErrInvalidKind         = errors.New("invalid_kind")
	ErrInvalidPeriod       = errors.New("invalid_period")
	ErrEmptyOrder          = errors.New("empty_order")
	ErrInvalidLine         = errors.New("invalid_line")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidTransition   = errors.New("invalid_transition")
)
