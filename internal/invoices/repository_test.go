package invoices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaidOnce(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	invoice, err := repo.Create(ctx, &CreateInvoiceRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		Description: "lavagem completa",
		AmountCents: 15000,
	})
	require.NoError(t, err)
	assert.False(t, invoice.Paid)
	assert.Nil(t, invoice.PaidAt)

	paid, err := repo.MarkPaid(ctx, "company-1", invoice.ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.PaidAt)

	_, err = repo.MarkPaid(ctx, "company-1", invoice.ID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestListByCompanyUnpaidFilter(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, &CreateInvoiceRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		AmountCents: 5000,
	})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &CreateInvoiceRequest{
		CompanyID:   "company-1",
		ClientID:    "client-2",
		AmountCents: 9000,
	})
	require.NoError(t, err)

	_, err = repo.MarkPaid(ctx, "company-1", first.ID)
	require.NoError(t, err)

	unpaid, err := repo.ListByCompany(ctx, "company-1", true)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, second.ID, unpaid[0].ID)

	all, err := repo.ListByCompany(ctx, "company-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInvoiceValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &CreateInvoiceRequest{ClientID: "client-1", AmountCents: 100})
	assert.ErrorIs(t, err, ErrMissingCompanyID)

	_, err = repo.Create(ctx, &CreateInvoiceRequest{CompanyID: "company-1", AmountCents: 100})
	assert.ErrorIs(t, err, ErrMissingClientID)

	_, err = repo.Create(ctx, &CreateInvoiceRequest{CompanyID: "company-1", ClientID: "client-1"})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestInvoiceCompanyScoping(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	invoice, err := repo.Create(ctx, &CreateInvoiceRequest{
		CompanyID:   "company-1",
		ClientID:    "client-1",
		AmountCents: 100,
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "company-2", invoice.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	_, err = repo.MarkPaid(ctx, "company-2", invoice.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
