package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateOrganizationRequest struct {
	Name string
}

type Service interface {
	Create(context.Context, CreateOrganizationRequest) (Organization, error)
	List(context.Context) ([]Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, org *Organization) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Organization, error)
	List(ctx context.Context, db *gorm.DB) ([]Organization, error)
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateSlug = errors.New("duplicate_slug")
	ErrNotFound      = errors.New("not_found")
)
