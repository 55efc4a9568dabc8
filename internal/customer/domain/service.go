package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/billfold/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name    string
	Email   string
	Address string
}

type UpdateCustomerRequest struct {
	ID      string
	Name    string
	Email   string
	Address string
}

type GetCustomerRequest struct {
	ID string
}

type ListCustomerRequest struct {
	PageToken string
	PageSize  int
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

// Service manages customers. Creating a customer also opens the customer's
// first invoice, dated the day of creation with a zero total; the two writes
// commit in one transaction.
type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	Update(context.Context, UpdateCustomerRequest) error
	// Delete removes the customer together with all owned invoices and their
	// items. A missing id is a successful no-op.
	Delete(ctx context.Context, id string) error
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidAddress = errors.New("invalid_address")
	ErrInvalidID      = errors.New("invalid_id")
	ErrDuplicateEmail = errors.New("duplicate_email")
	ErrNotFound       = errors.New("not_found")
)
