package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/billfold/pkg/db/pagination"
)

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// CreateItemRequest targets a customer, not an invoice: the service attaches
// the item to that customer's most recent invoice. Quantity and Price arrive
// as raw form values and are parsed here, not by the caller.
type CreateItemRequest struct {
	CustomerID  string
	Description string
	Quantity    string
	Price       string
}

type UpdateItemRequest struct {
	ID          string
	Description string
	Quantity    string
	Price       string
}

// RenderInvoiceResponse carries the preview document.
type RenderInvoiceResponse struct {
	HTML string `json:"html"`
}

// ExportInvoiceResponse carries the downloadable artifact.
type ExportInvoiceResponse struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Service interface {
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	// Delete removes the invoice and its items. A missing id is a no-op.
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, invoiceID string) ([]Item, error)
	ListAllItems(ctx context.Context) ([]Item, error)
	CreateItem(context.Context, CreateItemRequest) (Item, error)
	UpdateItem(context.Context, UpdateItemRequest) error
	// DeleteItem removes one item. A missing id is a no-op.
	DeleteItem(ctx context.Context, id string) error

	Render(ctx context.Context, invoiceID string) (RenderInvoiceResponse, error)
	Export(ctx context.Context, invoiceID string) (ExportInvoiceResponse, error)
}

var (
	ErrInvalidInvoiceID   = errors.New("invalid_invoice_id")
	ErrInvalidItemID      = errors.New("invalid_item_id")
	ErrInvalidCustomerID  = errors.New("invalid_customer_id")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvoiceNotFound    = errors.New("invoice_not_found")
	ErrItemNotFound       = errors.New("item_not_found")
)
