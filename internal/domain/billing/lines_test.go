package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

func TestBuildInvoiceGroup_GuidanceMultipliers(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", entity.CodeGuidanceBase, "85.00", "F1"),
		record(2, "Bos", entity.CodeGuidanceSecondHour, "170.00", "F1"),
		record(3, "Bos", entity.CodeGuidanceThirdHour, "255.00", "F1"),
	})
	boundaries := billing.ResolveBoundaries(rows, catalog)
	require.Len(t, boundaries, 1)

	group := billing.BuildInvoiceGroup(rows, boundaries[0], catalog)

	require.Len(t, group.Lines, 3)
	assert.Equal(t, 1, group.Lines[0].Quantity, "base code counts one hour")
	assert.Equal(t, 2, group.Lines[1].Quantity, "second-hour code counts two hours")
	assert.Equal(t, 3, group.Lines[2].Quantity, "third-hour code counts three hours")
}

func TestBuildInvoiceGroup_NonGuidanceQuantityAlwaysOne(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "60.50", "F1"),
		record(2, "Bos", "CONSULT", "60.50", "F1"),
	})
	boundaries := billing.ResolveBoundaries(rows, catalog)
	require.Len(t, boundaries, 1)

	group := billing.BuildInvoiceGroup(rows, boundaries[0], catalog)

	require.Len(t, group.Lines, 2)
	for _, line := range group.Lines {
		assert.Equal(t, 1, line.Quantity)
	}
}

func TestBuildInvoiceGroup_UnitPriceAlwaysFromBaseCode(t *testing.T) {
	// The unit price is a flat per-session rate taken from the base
	// guidance code, regardless of which code produced the line.
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", entity.CodeGuidanceSecondHour, "170.00", "F1"),
	})
	boundaries := billing.ResolveBoundaries(rows, catalog)

	group := billing.BuildInvoiceGroup(rows, boundaries[0], catalog)

	require.Len(t, group.Lines, 1)
	assert.Equal(t, "85.00", group.Lines[0].UnitPrice.StringFixed(2))
}

func TestBuildInvoiceGroup_TotalsFromStoredAmounts(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "121.00", "F1"),
		record(2, "Bos", "CONSULT", "60.50", "F1"),
	})
	boundaries := billing.ResolveBoundaries(rows, catalog)

	group := billing.BuildInvoiceGroup(rows, boundaries[0], catalog)

	assert.Equal(t, "181.50", group.GrossTotal.StringFixed(2))
	assert.Equal(t, "150.00", group.NetTotal.StringFixed(2))
	assert.Equal(t, "31.50", group.VATTotal.StringFixed(2))
}

func TestBuildInvoiceGroup_MembershipByExactClientName(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(1, "Bos", "CONSULT", "50.00", "F1"),
		record(2, "Aalders", "CONSULT", "99.00", "F2"),
		record(3, "Bos", "CONSULT", "30.00", "F1"),
	})
	boundaries := billing.ResolveBoundaries(rows, catalog)
	require.Len(t, boundaries, 2)

	group := billing.BuildInvoiceGroup(rows, boundaries[0], catalog)

	require.Len(t, group.Lines, 2, "only Bos rows belong to the Bos boundary")
	assert.Equal(t, "80.00", group.GrossTotal.StringFixed(2))
}

func TestBuildInvoiceGroup_LineCarriesFormattedDateAndDescription(t *testing.T) {
	catalog := billing.NewCatalog(testTariffs())
	rows := billing.Aggregate([]*entity.ServiceRecord{
		record(9, "Bos", entity.CodeGuidanceBase, "85.00", "F1"),
	})
	boundaries := billing.ResolveBoundaries(rows, catalog)

	group := billing.BuildInvoiceGroup(rows, boundaries[0], catalog)

	require.Len(t, group.Lines, 1)
	assert.Equal(t, "09-03-2026", group.Lines[0].Date)
	assert.Equal(t, "persoonlijke begeleiding", group.Lines[0].Description)
}
