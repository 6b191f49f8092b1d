package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceRecord is one delivered service as stored in the records table.
// Records are read once per batch run and never mutated during computation.
type ServiceRecord struct {
	Date          time.Time
	ClientName    string
	Time          string
	Cash          bool // paid in cash at the session
	AmountDue     decimal.Decimal
	TariffCode    string // stored in the note column; selects the tariff
	GrossAmount   decimal.Decimal
	NetAmount     decimal.Decimal
	VATAmount     decimal.Decimal
	InvoiceNumber string
	InvoiceDate   *time.Time // date the invoice was issued, if any
	DebtorNumber  string
}
