package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

func TestResolveBoundaries_InvoiceNumberChangeStartsNewInvoice(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Bos", "CONSULT", "30.00", "F2"),
	})

	boundaries := billing.ResolveBoundaries(rows, catalog)

	require.Len(t, boundaries, 2, "same client, invoice numbers F1 then F2: two documents")
	assert.Equal(t, "F1", boundaries[0].InvoiceNumber)
	assert.Equal(t, "F2", boundaries[1].InvoiceNumber)
}

func TestResolveBoundaries_SameInvoiceNumberSingleBoundary(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Bos", "CONSULT", "30.00", "F1"),
		record(3, "Bos", "CONSULT", "20.00", "F1"),
	})

	boundaries := billing.ResolveBoundaries(rows, catalog)

	require.Len(t, boundaries, 1)
	assert.Equal(t, "Bos", boundaries[0].ClientName)
}

func TestResolveBoundaries_GuidanceClientChangeStartsNewInvoice(t *testing.T) {
	// Personal guidance is invoiced per engagement: a client change starts
	// a new document even when no invoice numbers have been assigned yet.
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", entity.CodeGuidanceBase, "85.00", ""),
		record(2, "Aalders", entity.CodeGuidanceBase, "85.00", ""),
	})

	boundaries := billing.ResolveBoundaries(rows, catalog)

	require.Len(t, boundaries, 2)
	assert.Equal(t, "Bos", boundaries[0].ClientName)
	assert.Equal(t, "Aalders", boundaries[1].ClientName)
	assert.True(t, boundaries[0].Category.IsPersonalGuidance())
}

func TestResolveBoundaries_NonGuidanceClientChangeSameNumberNoNewInvoice(t *testing.T) {
	// For other tariffs only the invoice number decides; two clients that
	// somehow share an invoice number stay in one boundary.
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Aalders", "CONSULT", "30.00", "F1"),
	})

	boundaries := billing.ResolveBoundaries(rows, catalog)

	assert.Len(t, boundaries, 1)
}

func TestResolveBoundaries_SkipsSubtotalMarkersAndBlankNames(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Bos", "CONSULT", "30.00", "F1"),
	})

	boundaries := billing.ResolveBoundaries(rows, catalog)

	require.Len(t, boundaries, 1, "subtotal markers must not open boundaries")
}

func TestResolveBoundaries_FirstRecordAlwaysOpensBoundary(t *testing.T) {
	// Even an empty invoice number on the very first record opens a
	// boundary: every detail row belongs to exactly one invoice.
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", ""),
	})

	boundaries := billing.ResolveBoundaries(rows, catalog)

	require.Len(t, boundaries, 1)
	assert.Equal(t, "", boundaries[0].InvoiceNumber)
}
