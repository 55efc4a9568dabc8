// Package render projects an invoice snapshot into a printable document.
// Views carry data only; layout decisions stay inside the renderers.
package render

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentView is a read-only snapshot of everything the document shows.
// Preview and export both consume the same view, so the two modes cannot
// disagree on content.
type DocumentView struct {
	Invoice  InvoiceView
	Customer CustomerView
	Items    []LineItemView
}

type InvoiceView struct {
	ID    string
	Date  time.Time
	Total decimal.Decimal
}

type CustomerView struct {
	Name    string
	Email   string
	Address string
}

type LineItemView struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type Renderer interface {
	RenderHTML(input DocumentView) (string, error)
}
