package billing

import (
	"strings"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// InvoiceBoundary marks the start of a new invoice document in the scan.
type InvoiceBoundary struct {
	ClientName    string
	InvoiceNumber string
	DebtorNumber  string
	Category      entity.TariffCategory // tariff category of the opening record
	Description   string                // printed description of that tariff
}

// ResolveBoundaries scans the aggregated detail rows in order and decides
// where a new invoice document must start. A boundary opens when:
//
//   - the record's invoice number differs from the current one, or
//   - the current tariff category is personal guidance and the client name
//     differs from the current one. Personal guidance is invoiced per
//     engagement, so a client change starts a new document even before an
//     invoice number has been assigned.
//
// The tracked client, invoice number and tariff category advance only when
// a boundary opens. Subtotal markers and blank-named rows are skipped;
// every remaining detail row belongs to exactly one boundary, and the
// boundaries come back in scan order.
func ResolveBoundaries(rows []AggregateRow, catalog *Catalog) []InvoiceBoundary {
	var boundaries []InvoiceBoundary
	var curName, curInvoice string
	var curCategory entity.TariffCategory
	open := false

	for _, row := range rows {
		if row.Kind != RowDetail {
			continue
		}
		r := row.Record
		if strings.TrimSpace(r.ClientName) == "" {
			continue
		}

		starts := !open ||
			r.InvoiceNumber != curInvoice ||
			(curCategory.IsPersonalGuidance() && r.ClientName != curName)
		if !starts {
			continue
		}

		curName = r.ClientName
		curInvoice = r.InvoiceNumber
		curCategory = catalog.Category(r.TariffCode)
		open = true

		boundaries = append(boundaries, InvoiceBoundary{
			ClientName:    r.ClientName,
			InvoiceNumber: r.InvoiceNumber,
			DebtorNumber:  r.DebtorNumber,
			Category:      curCategory,
			Description:   catalog.Description(r.TariffCode),
		})
	}
	return boundaries
}
