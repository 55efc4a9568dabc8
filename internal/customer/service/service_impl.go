package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billfold/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/pkg/db"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	InvoiceRepo invoicedomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	invoicerepo invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("customer.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		invoicerepo: p.InvoiceRepo,
	}
}

// Create inserts the customer and the customer's first invoice in one
// transaction. The invoice starts empty: dated today, total zero.
func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return domain.Customer{}, domain.ErrInvalidAddress
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	invoice := invoicedomain.Invoice{
		ID:         s.genID.Generate(),
		CustomerID: customer.ID,
		Date:       now.Truncate(24 * time.Hour),
		Total:      decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateEmail
		}
		if err := s.repo.Insert(ctx, tx, &customer); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateEmail
			}
			return err
		}
		return s.invoicerepo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
	)
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) error {
	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.ErrInvalidEmail
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return domain.ErrInvalidAddress
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		// A customer may keep its own email; only another customer's counts.
		existing, err := s.repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != customer.ID {
			return domain.ErrDuplicateEmail
		}

		customer.Name = name
		customer.Email = email
		customer.Address = address
		customer.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, tx, customer); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
}

// Delete cascades in order: items, then invoices, then the customer, all in
// one transaction. Deleting a missing customer is a no-op.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return nil
		}

		if err := s.invoicerepo.DeleteItemsByCustomer(ctx, tx, id); err != nil {
			return err
		}
		if err := s.invoicerepo.DeleteByCustomer(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(customer *domain.Customer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: customer.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	resp := domain.ListCustomerResponse{Customers: customers}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
