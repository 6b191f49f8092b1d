package billing

// ProducedDocument is one successfully generated document in a run.
type ProducedDocument struct {
	ClientName    string
	InvoiceNumber string
	Path          string // archived document identifier
	Mailed        bool
	DeliveryError string // set when the mail call failed; the document itself exists
}

// SkippedDocument is one document that could not be produced or delivered;
// the rest of the batch is still attempted.
type SkippedDocument struct {
	ClientName    string
	InvoiceNumber string
	Reason        string
}

// RunResult summarizes one batch run for the caller: documents produced,
// documents skipped with reason, reference-data warnings and the number of
// ledger entries applied.
type RunResult struct {
	RunID         string
	Produced      []ProducedDocument
	Skipped       []SkippedDocument
	Warnings      int // missing tariff codes / client addresses, resolved via fallbacks
	LedgerApplied int // distinct clients whose last invoice number moved, not invoices
}
