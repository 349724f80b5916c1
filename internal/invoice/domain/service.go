package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/rentline/rentline/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListInvoiceRequest struct {
	PageToken  string
	PageSize   int32
	CustomerID string
	Status     string
}

type ListInvoiceFilter struct {
	CustomerID snowflake.ID
	Status     InvoiceStatus
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Generate(ctx context.Context, orderID string) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	Finalize(ctx context.Context, id string) (Invoice, error)
	Void(ctx context.Context, id string, reason string) (Invoice, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice, items []InvoiceItem) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Invoice, error)
	FindByOrderID(ctx context.Context, db *gorm.DB, orgID, orderID snowflake.ID) (*Invoice, error)
	ListItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]InvoiceItem, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListInvoiceFilter, page pagination.Pagination) ([]*Invoice, error)
	NextNumber(ctx context.Context, db *gorm.DB, orgID snowflake.ID) (int64, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrOrderNotFound       = errors.New("order_not_found")
	ErrCustomerNotFound    = errors.New("customer_not_found")
	ErrOutletNotFound      = errors.New("outlet_not_found")
	ErrOrderNotConfirmed   = errors.New("order_not_confirmed")
	ErrAlreadyInvoiced     = errors.New("already_invoiced")
	ErrNumberConflict      = errors.New("invoice_number_conflict")
	ErrInvalidTransition   = errors.New("invalid_transition")
)
