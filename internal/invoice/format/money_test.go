package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	valid := []struct {
		in   string
		want string
	}{
		{"2.50", "2.50"},
		{"0", "0.00"},
		{"10", "10.00"},
		{" 3.99 ", "3.99"},
		{"0.1", "0.10"},
	}
	for _, tc := range valid {
		got, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.StringFixed(2), tc.in)
	}

	invalid := []string{"", "abc", "-0.01", "-5", "2.505", "1.2.3"}
	for _, in := range invalid {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := ParseQuantity("3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	got, err = ParseQuantity(" 0 ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	for _, in := range []string{"", "three", "-1", "1.5"} {
		_, err := ParseQuantity(in)
		assert.Error(t, err, in)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "7.50", FormatMoney(decimal.RequireFromString("7.5")))
	assert.Equal(t, "0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "1000.00", FormatMoney(decimal.NewFromInt(1000)))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))

	day := time.Date(2024, time.March, 7, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-07", FormatDate(day))
}
