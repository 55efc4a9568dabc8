package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billfold/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindLatestByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Invoice, error)
	UpdateTotal(ctx context.Context, db *gorm.DB, id snowflake.ID, total decimal.Decimal) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) error

	InsertItem(ctx context.Context, db *gorm.DB, item *Item) error
	FindItemByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Item, error)
	UpdateItem(ctx context.Context, db *gorm.DB, item *Item) error
	DeleteItem(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	DeleteItemsByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) error
	DeleteItemsByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) error
	ListItemsByInvoice(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]Item, error)
	ListItems(ctx context.Context, db *gorm.DB) ([]Item, error)
}
