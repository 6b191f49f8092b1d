// Package pdf renders the practice's billing documents with Maroto v2.
//
// Invoice page layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: practice name        │  FACTUUR + number + date    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECIPIENT: name / street / postal code city / country      │
//	│  debtor number                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Datum | Omschrijving | Uren | Tarief | Bedrag       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: BTW / totaal / contant voldaan / nog te voldoen    │
//	│  FOOTER: payment terms + payment date                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/mjansen/praktijk-billing/internal/application/billing"
	domainbilling "github.com/mjansen/praktijk-billing/internal/domain/billing"
)

// ── color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── renderer ──────────────────────────────────────────────────────────────────

var _ appbilling.DocumentRenderer = (*MarotoRenderer)(nil)

// MarotoRenderer implements billing.DocumentRenderer using Maroto v2.
type MarotoRenderer struct {
	practiceName string
}

// NewMarotoRenderer builds the renderer. The practice name appears in the
// document headers.
func NewMarotoRenderer(practiceName string) *MarotoRenderer {
	return &MarotoRenderer{practiceName: practiceName}
}

func (g *MarotoRenderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.practiceName, true).
		Build()
	return maroto.New(cfg)
}

// RenderInvoice renders one invoice document and returns its bytes.
func (g *MarotoRenderer) RenderInvoice(_ context.Context, doc *appbilling.InvoiceDocument) ([]byte, error) {
	m := g.newDocument("Factuur " + doc.Group.InvoiceNumber)

	m.AddRows(invoiceHeaderRow(g.practiceName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipientRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(lineTableHeaderRow())
	for _, r := range lineTableRows(doc.Group.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalsRow(doc))
	m.AddRows(line.NewRow(3))
	m.AddRows(paymentFooterRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate invoice: %w", err)
	}
	return out.GetBytes(), nil
}

// ── invoice sections ──────────────────────────────────────────────────────────

// invoiceHeaderRow: practice name (left), FACTUUR + number + date (right).
func invoiceHeaderRow(practiceName string, doc *appbilling.InvoiceDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(practiceName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("FACTUUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Group.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Datum: "+doc.IssueDate.Format("02-01-2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// recipientRow: recipient address block plus debtor number. The fields may
// all be blank when the client has no address row; the document is still
// produced for manual correction.
func recipientRow(doc *appbilling.InvoiceDocument) core.Row {
	a := doc.Group.Address
	return row.New(26).Add(
		col.New(8).Add(
			text.New(doc.Group.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
			text.New(a.Street, props.Text{Size: 9, Top: 8}),
			text.New(strings.TrimSpace(a.PostalCode+"  "+a.City), props.Text{Size: 9, Top: 13}),
			text.New(a.Country, props.Text{Size: 9, Top: 18}),
		),
		col.New(4).Add(
			text.New("Debiteurnummer: "+doc.Group.DebtorNumber, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// lineTableHeaderRow: column headers of the line-item table.
func lineTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Datum", 2, align.Left),
		h("Omschrijving", 5, align.Left),
		h("Uren", 1, align.Center),
		h("Tarief", 2, align.Right),
		h("Bedrag", 2, align.Right),
	)
}

// lineTableRows: one row per invoice line.
func lineTableRows(lines []domainbilling.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.Date, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(euro(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(euro(l.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// invoiceTotalsRow: VAT, grand total, cash received and balance due.
func invoiceTotalsRow(doc *appbilling.InvoiceDocument) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: top, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top, Right: 1})
	}
	grandLabel := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: top, Right: 2,
		})
	}
	grandValue := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: top, Right: 1,
		})
	}

	return row.New(30).Add(
		col.New(4),
		col.New(4).Add(
			label("Waarvan BTW:", 2),
			label("Totaal:", 8),
			label("Contant voldaan:", 14),
			grandLabel("NOG TE VOLDOEN:", 21),
		),
		col.New(4).Add(
			value(euro(doc.Group.VATTotal), 2),
			value(euro(doc.Group.GrossTotal), 8),
			value(euro(doc.CashReceived), 14),
			grandValue(euro(doc.BalanceDue), 21),
		),
	)
}

// paymentFooterRow: payment terms with the payment date.
func paymentFooterRow(doc *appbilling.InvoiceDocument) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Gelieve het openstaande bedrag te voldoen vóór %s.",
				doc.PaymentDate.Format("02-01-2006")),
			props.Text{Size: 8, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// euro formats a decimal as a euro amount with a comma decimal separator.
// Ex: 121.5 → "€ 121,50".
func euro(d decimal.Decimal) string {
	return "€ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}
