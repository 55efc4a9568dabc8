// Package format holds pure parsing and formatting helpers for invoice
// values. Nothing in here touches storage.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal currency amount. Amounts are non-negative and
// carry at most two fraction digits.
func ParseAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("amount is empty")
	}

	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", trimmed, err)
	}
	if parsed.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("amount %q is negative", trimmed)
	}
	if parsed.Exponent() < -2 {
		return decimal.Decimal{}, fmt.Errorf("amount %q has more than two fraction digits", trimmed)
	}
	return parsed, nil
}

// ParseQuantity parses a non-negative integer quantity.
func ParseQuantity(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("quantity is empty")
	}

	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", trimmed, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("quantity %q is negative", trimmed)
	}
	return parsed, nil
}

// FormatMoney renders an amount with exactly two fraction digits.
func FormatMoney(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// FormatDate renders a calendar date.
func FormatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}
