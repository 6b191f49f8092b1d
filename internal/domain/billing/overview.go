package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mjansen/praktijk-billing/internal/domain"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// OverviewRowKind tags the rows of the period overview. The grand total is
// summed over detail rows only; the tag is what keeps subtotal and separator
// rows out of that sum.
type OverviewRowKind int

const (
	OverviewDetail OverviewRowKind = iota
	OverviewSubtotal
	OverviewSeparator
	OverviewGrandTotal
)

// OverviewRow is one row of the consolidated period report. Detail rows
// mirror a service record with a freshly computed net/VAT split; subtotal
// and grand-total rows carry aggregated amounts and leave the other
// columns blank.
type OverviewRow struct {
	Kind          OverviewRowKind
	Date          string
	ClientName    string
	Time          string
	Cash          string // Ja / Nee on detail rows
	AmountDue     decimal.Decimal
	TariffCode    string
	Net           decimal.Decimal
	VAT           decimal.Decimal
	Gross         decimal.Decimal
	InvoiceNumber string
	InvoiceDate   string
}

// OverviewTotals are the grand totals across all detail rows of the period.
type OverviewTotals struct {
	Net   decimal.Decimal
	VAT   decimal.Decimal
	Gross decimal.Decimal
}

// subtotalTolerance is the reconciliation tolerance between the grand total
// and the sum of the per-client subtotal rows.
var subtotalTolerance = decimal.NewFromFloat(0.01)

// BuildOverview compiles the full-period report. Per client, in
// first-occurrence order: one detail row per record with the date
// reformatted, the cash flag mapped to Ja/Nee and a fresh net/VAT split
// from the tariff's percentage; then one subtotal row; then one blank
// separator row. The closing grand-total row sums the detail rows only.
//
// The builder cross-checks the grand total against the sum of the subtotal
// rows. A mismatch beyond a cent is structurally impossible with this
// algorithm, so it is reported as ErrReconciliation and must fail the batch.
func BuildOverview(records []*entity.ServiceRecord, catalog *Catalog) ([]OverviewRow, OverviewTotals, error) {
	var rows []OverviewRow
	var totals OverviewTotals
	var subNetSum, subVATSum, subGrossSum decimal.Decimal

	for _, name := range DistinctClientNames(records) {
		var net, vat, gross decimal.Decimal
		for _, r := range records {
			if r.ClientName != name {
				continue
			}
			rowNet, rowVAT := SplitVAT(r.GrossAmount, catalog.VATPercentage(r.TariffCode))
			rowGross := r.GrossAmount.Round(2)

			cash := "Nee"
			if r.Cash {
				cash = "Ja"
			}
			invoiceDate := ""
			if r.InvoiceDate != nil {
				invoiceDate = r.InvoiceDate.Format("02-01-2006")
			}
			rows = append(rows, OverviewRow{
				Kind:          OverviewDetail,
				Date:          r.Date.Format("02-01-2006"),
				ClientName:    r.ClientName,
				Time:          r.Time,
				Cash:          cash,
				AmountDue:     r.AmountDue,
				TariffCode:    r.TariffCode,
				Net:           rowNet,
				VAT:           rowVAT,
				Gross:         rowGross,
				InvoiceNumber: r.InvoiceNumber,
				InvoiceDate:   invoiceDate,
			})

			net = net.Add(rowNet)
			vat = vat.Add(rowVAT)
			gross = gross.Add(rowGross)
			totals.Net = totals.Net.Add(rowNet)
			totals.VAT = totals.VAT.Add(rowVAT)
			totals.Gross = totals.Gross.Add(rowGross)
		}

		rows = append(rows, OverviewRow{
			Kind:  OverviewSubtotal,
			Net:   net.Round(2),
			VAT:   vat.Round(2),
			Gross: gross.Round(2),
		})
		subNetSum = subNetSum.Add(net)
		subVATSum = subVATSum.Add(vat)
		subGrossSum = subGrossSum.Add(gross)

		// Rendering spacer between clients, no amounts.
		rows = append(rows, OverviewRow{Kind: OverviewSeparator})
	}

	totals.Net = totals.Net.Round(2)
	totals.VAT = totals.VAT.Round(2)
	totals.Gross = totals.Gross.Round(2)

	if err := reconcile(totals, subNetSum, subVATSum, subGrossSum); err != nil {
		return nil, OverviewTotals{}, err
	}

	rows = append(rows, OverviewRow{
		Kind:  OverviewGrandTotal,
		Date:  "TOTAAL",
		Net:   totals.Net,
		VAT:   totals.VAT,
		Gross: totals.Gross,
	})
	return rows, totals, nil
}

// reconcile verifies that the grand total equals the sum of the per-client
// subtotals within a cent.
func reconcile(totals OverviewTotals, subNet, subVAT, subGross decimal.Decimal) error {
	check := func(label string, total, sum decimal.Decimal) error {
		if total.Sub(sum.Round(2)).Abs().GreaterThan(subtotalTolerance) {
			return fmt.Errorf("%w: %s grand total %s vs subtotal sum %s",
				domain.ErrReconciliation, label, total.StringFixed(2), sum.StringFixed(2))
		}
		return nil
	}
	if err := check("net", totals.Net, subNet); err != nil {
		return err
	}
	if err := check("vat", totals.VAT, subVAT); err != nil {
		return err
	}
	return check("gross", totals.Gross, subGross)
}
