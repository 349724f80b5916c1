package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateOutletRequest struct {
	Name    string
	State   string
	GSTIN   string
	Address string
}

type Service interface {
	Create(context.Context, CreateOutletRequest) (Outlet, error)
	List(context.Context) ([]Outlet, error)
	GetByID(ctx context.Context, id string) (Outlet, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, outlet *Outlet) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Outlet, error)
	ListByOrg(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]Outlet, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidState        = errors.New("invalid_state")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
