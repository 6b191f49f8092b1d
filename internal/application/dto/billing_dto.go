package dto

import "github.com/shopspring/decimal"

// QuickEntryRequest body for POST /api/entries: one delivered service,
// entered through the quick-entry form. The gross amount is VAT inclusive;
// the server computes the stored net/VAT split.
type QuickEntryRequest struct {
	Date          string           `json:"date"` // yyyy-mm-dd
	ClientName    string           `json:"client_name"`
	Time          string           `json:"time,omitempty"`
	Cash          bool             `json:"cash"`
	AmountDue     decimal.Decimal  `json:"amount_due"`
	TariffCode    string           `json:"tariff_code,omitempty"`
	GrossAmount   decimal.Decimal  `json:"gross_amount"`
	VATPercentage *decimal.Decimal `json:"vat_percentage,omitempty"` // absent = resolve from tariff code; an explicit 0 stays 0
	InvoiceNumber string           `json:"invoice_number,omitempty"`
	DebtorNumber  string           `json:"debtor_number,omitempty"`
}

// EntryResponse echoes the stored record with its computed split.
type EntryResponse struct {
	Date          string          `json:"date"`
	ClientName    string          `json:"client_name"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
}

// ClientResponse client reference data for lookups and the entry form.
type ClientResponse struct {
	Name              string `json:"name"`
	Street            string `json:"street,omitempty"`
	PostalCode        string `json:"postal_code,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	Email             string `json:"email,omitempty"`
	DebtorID          string `json:"debtor_id,omitempty"`
	LastInvoiceNumber string `json:"last_invoice_number,omitempty"`
}

// TariffResponse one tariff row for the entry form.
type TariffResponse struct {
	Code          string          `json:"code"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	VATPercentage decimal.Decimal `json:"vat_percentage"`
	Description   string          `json:"description"`
}

// ProducedDocumentResponse one generated document in a run result.
type ProducedDocumentResponse struct {
	ClientName    string `json:"client_name,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Path          string `json:"path"`
	Mailed        bool   `json:"mailed"`
	DeliveryError string `json:"delivery_error,omitempty"`
}

// SkippedDocumentResponse one skipped document with its reason.
type SkippedDocumentResponse struct {
	ClientName    string `json:"client_name,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Reason        string `json:"reason"`
}

// RunResultResponse summary of one batch run.
type RunResultResponse struct {
	RunID         string                     `json:"run_id"`
	Produced      []ProducedDocumentResponse `json:"produced"`
	Skipped       []SkippedDocumentResponse  `json:"skipped,omitempty"`
	Warnings      int                        `json:"warnings"`
	LedgerApplied int                        `json:"ledger_applied"` // distinct clients updated; two invoices for one client count once
}
