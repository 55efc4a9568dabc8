package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"gorm.io/gorm"
)

// ComputeTotal derives an invoice total from its current items: the exact sum
// of quantity times unit price, rounded to two fraction digits at the end.
// Subtotal products are summed unrounded. Pure and idempotent.
func ComputeTotal(items []domain.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// recomputeTotal re-derives and stores the invoice total. Callers run it
// inside the same transaction as the item mutation so the stored total is
// never observed stale.
func (s *Service) recomputeTotal(ctx context.Context, tx *gorm.DB, invoiceID snowflake.ID) error {
	items, err := s.repo.ListItemsByInvoice(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	return s.repo.UpdateTotal(ctx, tx, invoiceID, ComputeTotal(items))
}
