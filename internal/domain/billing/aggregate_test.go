package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// record builds a service record with consistent stored amounts: the gross
// is split 100/21 the way the quick-entry form stores it.
func record(day int, name, code, gross, invoiceNr string) *entity.ServiceRecord {
	g := decimal.RequireFromString(gross)
	net, vat := billing.SplitVAT(g, decimal.RequireFromString("21"))
	return &entity.ServiceRecord{
		Date:          time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		ClientName:    name,
		TariffCode:    code,
		AmountDue:     g,
		GrossAmount:   g,
		NetAmount:     net,
		VATAmount:     vat,
		InvoiceNumber: invoiceNr,
	}
}

func TestDistinctClientNames_FirstOccurrenceOrder(t *testing.T) {
	records := []*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Aalders", "CONSULT", "30.00", "F2"),
		record(3, "Bos", "CONSULT", "20.00", "F1"),
		record(4, "  ", "CONSULT", "10.00", "F3"),
		record(5, "", "CONSULT", "10.00", "F4"),
	}

	names := billing.DistinctClientNames(records)

	assert.Equal(t, []string{"Bos", "Aalders"}, names,
		"names keep first-occurrence order and blank names are dropped")
}

func TestAggregate_SubtotalPerClient(t *testing.T) {
	records := []*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Aalders", "CONSULT", "45.00", "F2"),
		record(3, "Bos", "CONSULT", "30.00", "F1"),
		record(4, "Bos", "CONSULT", "20.00", "F1"),
	}

	rows := billing.Aggregate(records)

	// Bos detail x3, Bos subtotal, Aalders detail, Aalders subtotal.
	require.Len(t, rows, 6)
	assert.Equal(t, billing.RowDetail, rows[0].Kind)
	assert.Equal(t, "Bos", rows[0].Record.ClientName)
	assert.Equal(t, billing.RowSubtotal, rows[3].Kind)
	assert.Equal(t, "100.00", rows[3].SumGross.StringFixed(2),
		"50 + 30 + 20 must subtotal to 100")
	assert.Equal(t, billing.RowSubtotal, rows[5].Kind)
	assert.Equal(t, "45.00", rows[5].SumGross.StringFixed(2))
}

func TestAggregate_SumsResetBetweenClients(t *testing.T) {
	records := []*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Aalders", "CONSULT", "10.00", "F2"),
	}

	rows := billing.Aggregate(records)

	require.Len(t, rows, 4)
	assert.Equal(t, "50.00", rows[1].SumGross.StringFixed(2))
	assert.Equal(t, "10.00", rows[3].SumGross.StringFixed(2),
		"the second client's subtotal must not include the first client's sums")
}

func TestAggregate_SubtotalCoversAllFourSums(t *testing.T) {
	records := []*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "121.00", "F1"),
	}

	rows := billing.Aggregate(records)

	require.Len(t, rows, 2)
	sub := rows[1]
	assert.Equal(t, "121.00", sub.SumAmountDue.StringFixed(2))
	assert.Equal(t, "100.00", sub.SumNet.StringFixed(2))
	assert.Equal(t, "21.00", sub.SumVAT.StringFixed(2))
	assert.Equal(t, "121.00", sub.SumGross.StringFixed(2))
}

func TestAggregate_StablePartitionKeepsInputOrder(t *testing.T) {
	records := []*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "10.00", "F1"),
		record(2, "Aalders", "CONSULT", "20.00", "F2"),
		record(3, "Bos", "CONSULT", "30.00", "F1"),
	}

	rows := billing.Aggregate(records)

	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[0].Record.Date.Day())
	assert.Equal(t, 3, rows[1].Record.Date.Day(),
		"a client's records keep their relative input order")
}

func TestAggregate_BlankNamesProduceNoRows(t *testing.T) {
	records := []*entity.ServiceRecord{
		record(1, "", "CONSULT", "10.00", "F1"),
		record(2, "   ", "CONSULT", "20.00", "F2"),
	}

	rows := billing.Aggregate(records)

	assert.Empty(t, rows, "blank-named records are dropped entirely")
}
