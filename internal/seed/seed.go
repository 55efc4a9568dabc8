// Package seed provisions demo records for local environments.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	invoiceservice "github.com/smallbiznis/billfold/internal/invoice/service"
	"gorm.io/gorm"
)

const demoCustomerEmail = "demo@billfold.local"

// EnsureDemoData seeds one demo customer with an invoice and a couple of line
// items. Safe to run on every startup; it is a no-op once the demo customer
// exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customerdomain.Customer{}).
			Where("email = ?", demoCustomerEmail).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		customer := customerdomain.Customer{
			ID:        node.Generate(),
			Name:      "Demo Customer",
			Email:     demoCustomerEmail,
			Address:   "1 Demo Street",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		invoice := invoicedomain.Invoice{
			ID:         node.Generate(),
			CustomerID: customer.ID,
			Date:       now.Truncate(24 * time.Hour),
			Total:      decimal.Zero,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		items := []invoicedomain.Item{
			{
				ID:          node.Generate(),
				InvoiceID:   invoice.ID,
				Description: "Consulting hours",
				Quantity:    3,
				Price:       decimal.RequireFromString("120.00"),
				CreatedAt:   now,
			},
			{
				ID:          node.Generate(),
				InvoiceID:   invoice.ID,
				Description: "Hosting",
				Quantity:    1,
				Price:       decimal.RequireFromString("25.50"),
				CreatedAt:   now,
			},
		}
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		total := invoiceservice.ComputeTotal(items)
		return tx.Model(&invoicedomain.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("total", total).Error
	})
}
