// Package billing implements the billing aggregation and report-compilation
// engine: grouping service records per client, detecting invoice boundaries,
// building invoice line items and compiling the period overview. Everything
// in this package is pure computation over in-memory reference data; loading
// and persistence live behind the repository ports.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
)

// DefaultVATPercentage is the business-rule fallback applied when a record
// carries no tariff code or an unknown one.
var DefaultVATPercentage = decimal.NewFromFloat(21.0)

// Catalog is the in-memory tariff lookup for one batch run, keyed by code.
// It is built once from the tariff table and passed into each component
// explicitly; there is no process-wide tariff state.
type Catalog struct {
	byCode map[string]*entity.TariffEntry
}

// NewCatalog builds the lookup. On duplicate codes the last entry wins.
func NewCatalog(entries []*entity.TariffEntry) *Catalog {
	byCode := make(map[string]*entity.TariffEntry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}
	return &Catalog{byCode: byCode}
}

// Has reports whether the code is present in the tariff table. Callers use
// it to tell an applied fallback apart from a real tariff row.
func (c *Catalog) Has(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// Description returns the printed description for a code, empty if unknown.
func (c *Catalog) Description(code string) string {
	if e, ok := c.byCode[code]; ok {
		return e.Description
	}
	return ""
}

// UnitPrice returns the unit price for a code, zero if unknown.
func (c *Catalog) UnitPrice(code string) decimal.Decimal {
	if e, ok := c.byCode[code]; ok {
		return e.UnitPrice
	}
	return decimal.Zero
}

// VATPercentage returns the VAT-inclusive percentage for a code.
// Unknown or absent codes fall back to DefaultVATPercentage.
func (c *Catalog) VATPercentage(code string) decimal.Decimal {
	if e, ok := c.byCode[code]; ok {
		return e.VATPercentage
	}
	return DefaultVATPercentage
}

// TariffMisses counts the records whose non-empty tariff code is absent
// from the table, so a batch can surface the applied fallbacks as warnings.
// A blank code means no tariff was recorded for the entry and the default
// rate is the intended behavior, not a miss.
func (c *Catalog) TariffMisses(records []*entity.ServiceRecord) int {
	misses := 0
	for _, r := range records {
		if r.TariffCode != "" && !c.Has(r.TariffCode) {
			misses++
		}
	}
	return misses
}

// Category returns the invoicing category for a code. Unknown codes are
// still classified by CategoryForCode so the guidance rules hold even when
// the tariff row is missing.
func (c *Catalog) Category(code string) entity.TariffCategory {
	if e, ok := c.byCode[code]; ok {
		return e.Category
	}
	return entity.CategoryForCode(code)
}
