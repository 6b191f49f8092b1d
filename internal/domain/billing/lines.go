package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// InvoiceLine is one printable line item of an invoice document.
type InvoiceLine struct {
	Date        string // dd-mm-yyyy
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // record gross, as stored
}

// InvoiceGroup is the transient per-invoice artifact handed to the document
// renderer: the boundary's client, its line items and the invoice totals.
// Discarded after the document is produced.
type InvoiceGroup struct {
	ClientName    string
	InvoiceNumber string
	DebtorNumber  string
	Address       *entity.ClientAddress
	Lines         []InvoiceLine
	NetTotal      decimal.Decimal
	VATTotal      decimal.Decimal
	GrossTotal    decimal.Decimal
}

// BuildInvoiceGroup collects the line items for one invoice boundary.
// Membership is the same rule the aggregator uses: every detail row whose
// client name matches the boundary's exactly, across the whole batch.
//
// The quantity is 1 unless the boundary tariff is personal guidance, in
// which case the second- and third-hour codes count for 2 and 3 hours on a
// single line. The unit price is always resolved from the base guidance
// code, a flat per-session rate regardless of which code produced the line.
// Totals accumulate the records' stored VAT and gross amounts; nothing is
// re-split at this stage.
func BuildInvoiceGroup(rows []AggregateRow, b InvoiceBoundary, catalog *Catalog) *InvoiceGroup {
	group := &InvoiceGroup{
		ClientName:    b.ClientName,
		InvoiceNumber: b.InvoiceNumber,
		DebtorNumber:  b.DebtorNumber,
	}
	unitPrice := catalog.UnitPrice(entity.CodeGuidanceBase)

	for _, row := range rows {
		if row.Kind != RowDetail || row.Record.ClientName != b.ClientName {
			continue
		}
		r := row.Record

		quantity := 1
		if b.Category.IsPersonalGuidance() {
			quantity = catalog.Category(r.TariffCode).HourMultiplier()
		}

		group.Lines = append(group.Lines, InvoiceLine{
			Date:        r.Date.Format("02-01-2006"),
			Description: b.Description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Amount:      r.GrossAmount,
		})
		group.NetTotal = group.NetTotal.Add(r.NetAmount)
		group.VATTotal = group.VATTotal.Add(r.VATAmount)
		group.GrossTotal = group.GrossTotal.Add(r.GrossAmount)
	}
	return group
}
