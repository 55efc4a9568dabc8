package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/invoice/render"
	"gorm.io/gorm"
)

// Render produces the on-screen preview document.
func (s *Service) Render(ctx context.Context, invoiceID string) (domain.RenderInvoiceResponse, error) {
	if s.renderer == nil {
		return domain.RenderInvoiceResponse{}, errors.New("renderer_not_configured")
	}

	view, err := s.buildDocumentView(ctx, invoiceID)
	if err != nil {
		return domain.RenderInvoiceResponse{}, err
	}

	html, err := s.renderer.RenderHTML(view)
	if err != nil {
		return domain.RenderInvoiceResponse{}, err
	}
	return domain.RenderInvoiceResponse{HTML: html}, nil
}

// Export produces the downloadable artifact. The render is bounded by ctx;
// a cancelled export discards the in-flight document.
func (s *Service) Export(ctx context.Context, invoiceID string) (domain.ExportInvoiceResponse, error) {
	if s.pdf == nil {
		return domain.ExportInvoiceResponse{}, errors.New("pdf_provider_not_configured")
	}

	view, err := s.buildDocumentView(ctx, invoiceID)
	if err != nil {
		return domain.ExportInvoiceResponse{}, err
	}

	data, err := s.pdf.GenerateInvoice(ctx, view)
	if err != nil {
		return domain.ExportInvoiceResponse{}, err
	}

	return domain.ExportInvoiceResponse{
		Filename:    fmt.Sprintf("invoice_%s.pdf", view.Invoice.ID),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// buildDocumentView snapshots the invoice, its items, and the owning customer
// into the single view both output modes consume. The invoice may legitimately
// have been deleted between listing and rendering; that surfaces as not found.
func (s *Service) buildDocumentView(ctx context.Context, invoiceID string) (render.DocumentView, error) {
	id, err := parseID(invoiceID, domain.ErrInvalidInvoiceID)
	if err != nil {
		return render.DocumentView{}, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return render.DocumentView{}, err
	}
	if invoice == nil {
		return render.DocumentView{}, domain.ErrInvoiceNotFound
	}

	items, err := s.repo.ListItemsByInvoice(ctx, s.db, id)
	if err != nil {
		return render.DocumentView{}, err
	}

	customer, err := s.loadCustomer(ctx, s.db, invoice.CustomerID)
	if err != nil {
		return render.DocumentView{}, err
	}

	return render.DocumentView{
		Invoice: render.InvoiceView{
			ID:    invoice.ID.String(),
			Date:  invoice.Date,
			Total: invoice.Total,
		},
		Customer: render.CustomerView{
			Name:    customer.Name,
			Email:   customer.Email,
			Address: customer.Address,
		},
		Items: buildLineItemViews(items),
	}, nil
}

type customerRow struct {
	ID      snowflake.ID
	Name    string
	Email   string
	Address string
}

func (s *Service) loadCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*customerRow, error) {
	var customer customerRow
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, address
		 FROM customers WHERE id = ?`,
		customerID,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, customerdomain.ErrNotFound
	}
	return &customer, nil
}

func buildLineItemViews(items []domain.Item) []render.LineItemView {
	views := make([]render.LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, render.LineItemView{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    item.Subtotal(),
		})
	}
	return views
}
