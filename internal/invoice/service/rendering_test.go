package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPreviewDocument(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_render")
	ctx := context.Background()

	alice, invoice := env.createCustomer(t, "Alice", "alice@render.test")

	_, err := env.invoiceSvc.CreateItem(ctx, domain.CreateItemRequest{
		CustomerID:  alice.ID.String(),
		Description: "Widget",
		Quantity:    "3",
		Price:       "2.50",
	})
	require.NoError(t, err)

	resp, err := env.invoiceSvc.Render(ctx, invoice.ID.String())
	require.NoError(t, err)

	assert.Contains(t, resp.HTML, "Alice")
	assert.Contains(t, resp.HTML, "alice@render.test")
	assert.Contains(t, resp.HTML, "Widget")
	assert.Contains(t, resp.HTML, "7.50")
	assert.Contains(t, resp.HTML, invoice.ID.String())
}

func TestExportProducesNamedPDF(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_export")
	ctx := context.Background()

	alice, invoice := env.createCustomer(t, "Alice", "alice@export.test")

	_, err := env.invoiceSvc.CreateItem(ctx, domain.CreateItemRequest{
		CustomerID:  alice.ID.String(),
		Description: "Widget",
		Quantity:    "3",
		Price:       "2.50",
	})
	require.NoError(t, err)

	resp, err := env.invoiceSvc.Export(ctx, invoice.ID.String())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("invoice_%s.pdf", invoice.ID), resp.Filename)
	assert.Equal(t, "application/pdf", resp.ContentType)
	require.NotEmpty(t, resp.Data)
	assert.True(t, strings.HasPrefix(string(resp.Data), "%PDF"), "export should be a PDF document")
}

func TestRenderMissingInvoiceReturnsNotFound(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_render_missing")

	node, err := snowflake.NewNode(6)
	require.NoError(t, err)

	missing := node.Generate().String()

	_, err = env.invoiceSvc.Render(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	_, err = env.invoiceSvc.Export(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
