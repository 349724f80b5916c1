package domain

import (
	"context"
	"errors"

	"github.com/rentline/rentline/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name  string
	Email string
	Phone string
	GSTIN string
	State string
	IsSEZ bool
}

type ListCustomerRequest struct {
	PageToken string
	PageSize  int32
	Name      string
	Email     string
	State     string
	SEZOnly   bool
}

type ListCustomerFilter struct {
	Name    string
	Email   string
	State   string
	SEZOnly bool
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrInvalidGSTIN        = errors.New("invalid_gstin")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
