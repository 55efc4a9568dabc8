package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/invoice/format"
	"github.com/smallbiznis/billfold/internal/invoice/render"
	"github.com/smallbiznis/billfold/internal/providers/pdf"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Renderer render.Renderer
	PDF      pdf.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	renderer render.Renderer
	pdf      pdf.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		renderer: p.Renderer,
		pdf:      p.PDF,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: invoice.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := parseID(id, domain.ErrInvalidInvoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return *item, nil
}

// Delete removes the invoice and its items in one transaction, items first.
// Deleting a missing invoice is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := parseID(id, domain.ErrInvalidInvoiceID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return nil
		}

		if err := s.repo.DeleteItemsByInvoice(ctx, tx, invoiceID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, invoiceID)
	})
}

func (s *Service) ListItems(ctx context.Context, invoiceID string) ([]domain.Item, error) {
	id, err := parseID(invoiceID, domain.ErrInvalidInvoiceID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}

	return s.repo.ListItemsByInvoice(ctx, s.db, id)
}

func (s *Service) ListAllItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx, s.db)
}

// CreateItem attaches a new line to the customer's most recent invoice and
// recomputes that invoice's total before the transaction commits.
func (s *Service) CreateItem(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	customerID, err := parseID(req.CustomerID, domain.ErrInvalidCustomerID)
	if err != nil {
		return domain.Item{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Item{}, domain.ErrInvalidDescription
	}

	quantity, err := format.ParseQuantity(req.Quantity)
	if err != nil {
		return domain.Item{}, domain.ErrInvalidQuantity
	}

	price, err := format.ParseAmount(req.Price)
	if err != nil {
		return domain.Item{}, domain.ErrInvalidPrice
	}

	item := domain.Item{
		ID:          s.genID.Generate(),
		Description: description,
		Quantity:    quantity,
		Price:       price.Round(2),
		CreatedAt:   time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindLatestByCustomer(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrInvoiceNotFound
		}

		item.InvoiceID = invoice.ID
		if err := s.repo.InsertItem(ctx, tx, &item); err != nil {
			return err
		}
		return s.recomputeTotal(ctx, tx, invoice.ID)
	})
	if err != nil {
		return domain.Item{}, err
	}

	s.log.Info("item created",
		zap.String("item_id", item.ID.String()),
		zap.String("invoice_id", item.InvoiceID.String()),
	)
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, req domain.UpdateItemRequest) error {
	itemID, err := parseID(req.ID, domain.ErrInvalidItemID)
	if err != nil {
		return err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.ErrInvalidDescription
	}

	quantity, err := format.ParseQuantity(req.Quantity)
	if err != nil {
		return domain.ErrInvalidQuantity
	}

	price, err := format.ParseAmount(req.Price)
	if err != nil {
		return domain.ErrInvalidPrice
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		item.Description = description
		item.Quantity = quantity
		item.Price = price.Round(2)
		if err := s.repo.UpdateItem(ctx, tx, item); err != nil {
			return err
		}
		return s.recomputeTotal(ctx, tx, item.InvoiceID)
	})
}

// DeleteItem removes the item and recomputes the former owner's total in the
// same transaction. Deleting a missing item is a no-op.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	itemID, err := parseID(id, domain.ErrInvalidItemID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.repo.FindItemByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}

		if err := s.repo.DeleteItem(ctx, tx, itemID); err != nil {
			return err
		}
		return s.recomputeTotal(ctx, tx, item.InvoiceID)
	})
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
