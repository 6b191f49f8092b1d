package entity

import "github.com/shopspring/decimal"

// TariffCategory classifies a tariff for invoicing rules. The category is
// derived from the tariff code when reference data is loaded, so the rules
// keep working even if someone edits the printed description.
type TariffCategory int

const (
	CategoryGeneral TariffCategory = iota
	CategoryGuidanceBase       // first-hour personal guidance, carries the unit price
	CategoryGuidanceSecondHour // billed as two hours on one line
	CategoryGuidanceThirdHour  // billed as three hours on one line
)

// Tariff codes for personal guidance sessions.
const (
	CodeGuidanceBase       = "PGB1"
	CodeGuidanceSecondHour = "PGB2"
	CodeGuidanceThirdHour  = "PGB3"
)

// CategoryForCode maps a tariff code to its invoicing category.
func CategoryForCode(code string) TariffCategory {
	switch code {
	case CodeGuidanceBase:
		return CategoryGuidanceBase
	case CodeGuidanceSecondHour:
		return CategoryGuidanceSecondHour
	case CodeGuidanceThirdHour:
		return CategoryGuidanceThirdHour
	default:
		return CategoryGeneral
	}
}

// IsPersonalGuidance reports whether the category belongs to the personal
// guidance family, which is invoiced per engagement.
func (c TariffCategory) IsPersonalGuidance() bool {
	return c == CategoryGuidanceBase || c == CategoryGuidanceSecondHour || c == CategoryGuidanceThirdHour
}

// HourMultiplier is the quantity printed on an invoice line for this category.
func (c TariffCategory) HourMultiplier() int {
	switch c {
	case CategoryGuidanceSecondHour:
		return 2
	case CategoryGuidanceThirdHour:
		return 3
	default:
		return 1
	}
}

// TariffEntry is one row of the tariff table: a priced service category.
type TariffEntry struct {
	Code          string
	UnitPrice     decimal.Decimal
	VATPercentage decimal.Decimal // VAT included, in percent (e.g. 21.0)
	Description   string          // printed on the invoice line
	Category      TariffCategory
}
