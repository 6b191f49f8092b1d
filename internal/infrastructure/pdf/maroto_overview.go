package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/mjansen/praktijk-billing/internal/application/billing"
	domainbilling "github.com/mjansen/praktijk-billing/internal/domain/billing"
)

// RenderOverview renders the consolidated period report: every consult in
// the period, grouped per client with a subtotal row, closed by the grand
// total row.
func (g *MarotoRenderer) RenderOverview(_ context.Context, doc *appbilling.OverviewDocument) ([]byte, error) {
	m := g.newDocument("Overzicht consulten")

	m.AddRows(overviewHeaderRow(g.practiceName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(overviewTableHeaderRow())
	for _, r := range doc.Rows {
		m.AddRows(overviewRow(r))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate overview: %w", err)
	}
	return out.GetBytes(), nil
}

// ── overview sections ─────────────────────────────────────────────────────────

func overviewHeaderRow(practiceName string, doc *appbilling.OverviewDocument) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(practiceName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Overzicht consulten", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Datum: "+doc.IssueDate.Format("02-01-2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func overviewTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Datum", 1, align.Left),
		h("Cliënt", 2, align.Left),
		h("Tijd", 1, align.Left),
		h("Contant", 1, align.Center),
		h("Te voldoen", 1, align.Right),
		h("Code", 1, align.Left),
		h("Netto", 1, align.Right),
		h("BTW", 1, align.Right),
		h("Bruto", 1, align.Right),
		h("Factuurnr", 1, align.Left),
		h("F.datum", 1, align.Left),
	)
}

// overviewRow maps one report row to the table. Subtotal and grand-total
// rows print amounts only; separator rows print nothing and just take up
// vertical space between clients.
func overviewRow(r domainbilling.OverviewRow) core.Row {
	switch r.Kind {
	case domainbilling.OverviewSeparator:
		return row.New(3)
	case domainbilling.OverviewSubtotal:
		return amountsOnlyRow("Subtotaal", r, fontstyle.Bold, 7)
	case domainbilling.OverviewGrandTotal:
		return amountsOnlyRow(r.Date, r, fontstyle.Bold, 8)
	}

	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1}))
	}
	return row.New(5).Add(
		cell(r.Date, 1, align.Left),
		cell(r.ClientName, 2, align.Left),
		cell(r.Time, 1, align.Left),
		cell(r.Cash, 1, align.Center),
		cell(euro(r.AmountDue), 1, align.Right),
		cell(r.TariffCode, 1, align.Left),
		cell(euro(r.Net), 1, align.Right),
		cell(euro(r.VAT), 1, align.Right),
		cell(euro(r.Gross), 1, align.Right),
		cell(r.InvoiceNumber, 1, align.Left),
		cell(r.InvoiceDate, 1, align.Left),
	)
}

// amountsOnlyRow renders the three amount columns with a label in the date
// column, leaving the descriptive columns blank.
func amountsOnlyRow(label string, r domainbilling.OverviewRow, style fontstyle.Type, size float64) core.Row {
	txt := func(a align.Type) props.Text {
		return props.Text{Style: style, Size: size, Align: a, Color: colorPrimary, Top: 1}
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(label, txt(align.Left))),
		col.New(3),
		col.New(1).Add(text.New(euro(r.Net), txt(align.Right))),
		col.New(1).Add(text.New(euro(r.VAT), txt(align.Right))),
		col.New(1).Add(text.New(euro(r.Gross), txt(align.Right))),
		col.New(3),
	)
}
