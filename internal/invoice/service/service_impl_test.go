package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	customerdomain "github.com/smallbiznis/billfold/internal/customer/domain"
	customerrepository "github.com/smallbiznis/billfold/internal/customer/repository"
	customerservice "github.com/smallbiznis/billfold/internal/customer/service"
	"github.com/smallbiznis/billfold/internal/invoice/domain"
	"github.com/smallbiznis/billfold/internal/invoice/render"
	"github.com/smallbiznis/billfold/internal/invoice/repository"
	"github.com/smallbiznis/billfold/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	repo        domain.Repository
	invoiceSvc  domain.Service
	customerSvc customerdomain.Service
}

func newTestEnv(t *testing.T, name string) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&domain.Invoice{},
		&domain.Item{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	repo := repository.Provide()

	invoiceSvc := New(Params{
		DB:       db,
		Log:      log,
		GenID:    node,
		Repo:     repo,
		Renderer: render.NewRenderer(),
		PDF:      pdf.New(),
	})

	customerSvc := customerservice.New(customerservice.Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Repo:        customerrepository.Provide(),
		InvoiceRepo: repo,
	})

	return testEnv{
		db:          db,
		repo:        repo,
		invoiceSvc:  invoiceSvc,
		customerSvc: customerSvc,
	}
}

func (e testEnv) createCustomer(t *testing.T, name, email string) (customerdomain.Customer, domain.Invoice) {
	t.Helper()

	customer, err := e.customerSvc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Name:    name,
		Email:   email,
		Address: "1 Main St",
	})
	require.NoError(t, err)

	invoice, err := e.repo.FindLatestByCustomer(context.Background(), e.db, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	return customer, *invoice
}

func (e testEnv) invoiceTotal(t *testing.T, id snowflake.ID) string {
	t.Helper()

	invoice, err := e.invoiceSvc.GetByID(context.Background(), id.String())
	require.NoError(t, err)
	return invoice.Total.StringFixed(2)
}

func TestItemLifecycleKeepsInvoiceTotalCurrent(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_lifecycle")
	ctx := context.Background()

	alice, invoice := env.createCustomer(t, "Alice", "alice@x.com")
	assert.Equal(t, "0.00", env.invoiceTotal(t, invoice.ID))

	widget, err := env.invoiceSvc.CreateItem(ctx, domain.CreateItemRequest{
		CustomerID:  alice.ID.String(),
		Description: "Widget",
		Quantity:    "3",
		Price:       "2.50",
	})
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, widget.InvoiceID)
	assert.Equal(t, "7.50", env.invoiceTotal(t, invoice.ID))

	gadget, err := env.invoiceSvc.CreateItem(ctx, domain.CreateItemRequest{
		CustomerID:  alice.ID.String(),
		Description: "Gadget",
		Quantity:    "1",
		Price:       "10.00",
	})
	require.NoError(t, err)
	assert.Equal(t, "17.50", env.invoiceTotal(t, invoice.ID))

	err = env.invoiceSvc.UpdateItem(ctx, domain.UpdateItemRequest{
		ID:          widget.ID.String(),
		Description: "Widget",
		Quantity:    "5",
		Price:       "2.50",
	})
	require.NoError(t, err)
	assert.Equal(t, "22.50", env.invoiceTotal(t, invoice.ID))

	require.NoError(t, env.invoiceSvc.DeleteItem(ctx, gadget.ID.String()))
	assert.Equal(t, "12.50", env.invoiceTotal(t, invoice.ID))

	require.NoError(t, env.invoiceSvc.DeleteItem(ctx, widget.ID.String()))
	assert.Equal(t, "0.00", env.invoiceTotal(t, invoice.ID))
}

func TestCreateItemValidatesInput(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_create_validation")
	ctx := context.Background()

	alice, _ := env.createCustomer(t, "Alice", "alice@validation.test")

	cases := []struct {
		name string
		req  domain.CreateItemRequest
		want error
	}{
		{
			name: "bad customer id",
			req:  domain.CreateItemRequest{CustomerID: "abc", Description: "Widget", Quantity: "1", Price: "2.50"},
			want: domain.ErrInvalidCustomerID,
		},
		{
			name: "blank description",
			req:  domain.CreateItemRequest{CustomerID: alice.ID.String(), Description: "   ", Quantity: "1", Price: "2.50"},
			want: domain.ErrInvalidDescription,
		},
		{
			name: "negative quantity",
			req:  domain.CreateItemRequest{CustomerID: alice.ID.String(), Description: "Widget", Quantity: "-1", Price: "2.50"},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "quantity not a number",
			req:  domain.CreateItemRequest{CustomerID: alice.ID.String(), Description: "Widget", Quantity: "three", Price: "2.50"},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "negative price",
			req:  domain.CreateItemRequest{CustomerID: alice.ID.String(), Description: "Widget", Quantity: "1", Price: "-2.50"},
			want: domain.ErrInvalidPrice,
		},
		{
			name: "price with sub-cent precision",
			req:  domain.CreateItemRequest{CustomerID: alice.ID.String(), Description: "Widget", Quantity: "1", Price: "2.505"},
			want: domain.ErrInvalidPrice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.invoiceSvc.CreateItem(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateItemUnknownCustomerReturnsNotFound(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_unknown_customer")

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	_, err = env.invoiceSvc.CreateItem(context.Background(), domain.CreateItemRequest{
		CustomerID:  node.Generate().String(),
		Description: "Widget",
		Quantity:    "1",
		Price:       "2.50",
	})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_delete_invoice")
	ctx := context.Background()

	alice, invoice := env.createCustomer(t, "Alice", "alice@delete.test")

	_, err := env.invoiceSvc.CreateItem(ctx, domain.CreateItemRequest{
		CustomerID:  alice.ID.String(),
		Description: "Widget",
		Quantity:    "2",
		Price:       "4.00",
	})
	require.NoError(t, err)

	require.NoError(t, env.invoiceSvc.Delete(ctx, invoice.ID.String()))

	_, err = env.invoiceSvc.GetByID(ctx, invoice.ID.String())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	items, err := env.invoiceSvc.ListAllItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Already gone; deleting again succeeds without effect.
	assert.NoError(t, env.invoiceSvc.Delete(ctx, invoice.ID.String()))
}

func TestDeleteMissingItemIsNoop(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_delete_missing_item")

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	assert.NoError(t, env.invoiceSvc.DeleteItem(context.Background(), node.Generate().String()))
}

func TestUpdateMissingItemReturnsNotFound(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_update_missing_item")

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	err = env.invoiceSvc.UpdateItem(context.Background(), domain.UpdateItemRequest{
		ID:          node.Generate().String(),
		Description: "Widget",
		Quantity:    "1",
		Price:       "2.50",
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestListItemsRequiresExistingInvoice(t *testing.T) {
	env := newTestEnv(t, "invoicesvc_list_items")
	ctx := context.Background()

	alice, invoice := env.createCustomer(t, "Alice", "alice@list.test")

	_, err := env.invoiceSvc.CreateItem(ctx, domain.CreateItemRequest{
		CustomerID:  alice.ID.String(),
		Description: "Widget",
		Quantity:    "1",
		Price:       "2.50",
	})
	require.NoError(t, err)

	items, err := env.invoiceSvc.ListItems(ctx, invoice.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Description)

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)
	_, err = env.invoiceSvc.ListItems(ctx, node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
