package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// RowKind distinguishes detail rows from the subtotal markers interleaved
// between client groups.
type RowKind int

const (
	RowDetail RowKind = iota
	RowSubtotal
)

// AggregateRow is one row of the aggregated batch sequence: either a
// service record (detail) or a per-client subtotal marker.
type AggregateRow struct {
	Kind   RowKind
	Record *entity.ServiceRecord // set on detail rows

	// Subtotal sums, set on subtotal markers.
	SumAmountDue decimal.Decimal
	SumNet       decimal.Decimal
	SumVAT       decimal.Decimal
	SumGross     decimal.Decimal
}

// DistinctClientNames returns the client names appearing in the records in
// first-occurrence order. Blank and whitespace-only names are dropped.
func DistinctClientNames(records []*entity.ServiceRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range records {
		name := r.ClientName
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Aggregate partitions the date-ordered records per client (stable, in
// original input order) and appends one subtotal marker after each client's
// rows. The running sums reset at every client boundary. Records with blank
// names never appear in the output.
func Aggregate(records []*entity.ServiceRecord) []AggregateRow {
	names := DistinctClientNames(records)
	rows := make([]AggregateRow, 0, len(records)+len(names))

	for _, name := range names {
		var sumDue, sumNet, sumVAT, sumGross decimal.Decimal
		for _, r := range records {
			if r.ClientName != name {
				continue
			}
			rows = append(rows, AggregateRow{Kind: RowDetail, Record: r})
			sumDue = sumDue.Add(r.AmountDue)
			sumNet = sumNet.Add(r.NetAmount)
			sumVAT = sumVAT.Add(r.VATAmount)
			sumGross = sumGross.Add(r.GrossAmount)
		}
		rows = append(rows, AggregateRow{
			Kind:         RowSubtotal,
			SumAmountDue: sumDue,
			SumNet:       sumNet,
			SumVAT:       sumVAT,
			SumGross:     sumGross,
		})
	}
	return rows
}
