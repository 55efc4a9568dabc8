package pdf

import (
	"context"

	"github.com/smallbiznis/billfold/internal/invoice/render"
)

// Provider converts a rendered invoice view into print-ready document bytes.
// It decides pagination and typesetting only; content selection happens
// upstream in the render view builder.
type Provider interface {
	GenerateInvoice(ctx context.Context, view render.DocumentView) ([]byte, error)
}
