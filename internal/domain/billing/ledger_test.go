package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjansen/praktijk-billing/internal/domain/billing"
)

func TestLedgerUpdates_OnePerClient(t *testing.T) {
	groups := []*billing.InvoiceGroup{
		{ClientName: "Bos", InvoiceNumber: "F1"},
		{ClientName: "Aalders", InvoiceNumber: "F2"},
	}

	updates := billing.LedgerUpdates(groups)

	require.Len(t, updates, 2)
	assert.Equal(t, "F1", updates[0].InvoiceNumber)
	assert.Equal(t, "F2", updates[1].InvoiceNumber)
}

func TestLedgerUpdates_LastInvoiceInScanOrderWins(t *testing.T) {
	groups := []*billing.InvoiceGroup{
		{ClientName: "Bos", InvoiceNumber: "F1"},
		{ClientName: "Aalders", InvoiceNumber: "F2"},
		{ClientName: "Bos", InvoiceNumber: "F3"},
	}

	updates := billing.LedgerUpdates(groups)

	require.Len(t, updates, 2, "one ledger entry per client")
	assert.Equal(t, "Bos", updates[0].ClientName)
	assert.Equal(t, "F3", updates[0].InvoiceNumber,
		"the last invoice in scan order becomes the persisted number")
}

func TestLedgerUpdates_EmptyBatch(t *testing.T) {
	assert.Empty(t, billing.LedgerUpdates(nil))
}
