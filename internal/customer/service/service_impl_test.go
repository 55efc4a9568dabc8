package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/billfold/internal/customer/domain"
	"github.com/smallbiznis/billfold/internal/customer/repository"
	invoicedomain "github.com/smallbiznis/billfold/internal/invoice/domain"
	invoicerepository "github.com/smallbiznis/billfold/internal/invoice/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, name string) (domain.Service, invoicedomain.Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Customer{},
		&invoicedomain.Invoice{},
		&invoicedomain.Item{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	invoiceRepo := invoicerepository.Provide()
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		InvoiceRepo: invoiceRepo,
	})

	return svc, invoiceRepo, db
}

func TestCreateCustomerOpensInitialInvoice(t *testing.T) {
	svc, invoiceRepo, db := newTestService(t, "customersvc_create")
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Alice",
		Email:   "alice@x.com",
		Address: "1 Main St",
	})
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Equal(t, "Alice", customer.Name)

	invoice, err := invoiceRepo.FindLatestByCustomer(ctx, db, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	assert.Equal(t, customer.ID, invoice.CustomerID)
	assert.Equal(t, "0.00", invoice.Total.StringFixed(2))
	assert.WithinDuration(t, time.Now().UTC(), invoice.Date, 24*time.Hour)
}

func TestCreateCustomerValidatesInput(t *testing.T) {
	svc, _, _ := newTestService(t, "customersvc_validation")
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.CreateCustomerRequest
		want error
	}{
		{
			name: "blank name",
			req:  domain.CreateCustomerRequest{Name: "  ", Email: "a@x.com", Address: "1 Main St"},
			want: domain.ErrInvalidName,
		},
		{
			name: "blank email",
			req:  domain.CreateCustomerRequest{Name: "Alice", Email: "", Address: "1 Main St"},
			want: domain.ErrInvalidEmail,
		},
		{
			name: "email without at sign",
			req:  domain.CreateCustomerRequest{Name: "Alice", Email: "alice.example.com", Address: "1 Main St"},
			want: domain.ErrInvalidEmail,
		},
		{
			name: "blank address",
			req:  domain.CreateCustomerRequest{Name: "Alice", Email: "a@x.com", Address: " "},
			want: domain.ErrInvalidAddress,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateCustomerRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t, "customersvc_duplicate")
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Alice",
		Email:   "alice@dup.test",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Other Alice",
		Email:   "alice@dup.test",
		Address: "2 Side St",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUpdateCustomer(t *testing.T) {
	svc, _, _ := newTestService(t, "customersvc_update")
	ctx := context.Background()

	alice, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Alice",
		Email:   "alice@update.test",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	bob, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Bob",
		Email:   "bob@update.test",
		Address: "2 Side St",
	})
	require.NoError(t, err)

	// Keeping your own email is not a conflict.
	err = svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:      alice.ID.String(),
		Name:    "Alice Smith",
		Email:   "alice@update.test",
		Address: "3 New St",
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, domain.GetCustomerRequest{ID: alice.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.Name)
	assert.Equal(t, "3 New St", got.Address)

	// Taking another customer's email is.
	err = svc.Update(ctx, domain.UpdateCustomerRequest{
		ID:      bob.ID.String(),
		Name:    "Bob",
		Email:   "alice@update.test",
		Address: "2 Side St",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUpdateMissingCustomerReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, "customersvc_update_missing")

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	err = svc.Update(context.Background(), domain.UpdateCustomerRequest{
		ID:      node.Generate().String(),
		Name:    "Nobody",
		Email:   "nobody@x.com",
		Address: "1 Nowhere St",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCustomerCascades(t *testing.T) {
	svc, invoiceRepo, db := newTestService(t, "customersvc_cascade")
	ctx := context.Background()

	alice, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:    "Alice",
		Email:   "alice@cascade.test",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	invoice, err := invoiceRepo.FindLatestByCustomer(ctx, db, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, invoice)

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	item := invoicedomain.Item{
		ID:          node.Generate(),
		InvoiceID:   invoice.ID,
		Description: "Widget",
		Quantity:    2,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, invoiceRepo.InsertItem(ctx, db, &item))

	require.NoError(t, svc.Delete(ctx, alice.ID.String()))

	_, err = svc.GetByID(ctx, domain.GetCustomerRequest{ID: alice.ID.String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gone, err := invoiceRepo.FindByID(ctx, db, invoice.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	goneItem, err := invoiceRepo.FindItemByID(ctx, db, item.ID)
	require.NoError(t, err)
	assert.Nil(t, goneItem)
}

func TestDeleteMissingCustomerIsNoop(t *testing.T) {
	svc, _, _ := newTestService(t, "customersvc_delete_missing")

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), node.Generate().String()))
}

func TestListCustomersPaginates(t *testing.T) {
	svc, _, _ := newTestService(t, "customersvc_list")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.CreateCustomerRequest{
			Name:    fmt.Sprintf("Customer %d", i),
			Email:   fmt.Sprintf("customer%d@list.test", i),
			Address: "1 Main St",
		})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, domain.ListCustomerRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, first.Customers, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := svc.List(ctx, domain.ListCustomerRequest{PageSize: 2, PageToken: first.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, second.Customers, 1)
	assert.False(t, second.HasMore)
}
