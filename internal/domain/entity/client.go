package entity

// ClientAddress is the client reference data used on invoice documents.
// Read-only during a batch run; looked up by name, case-insensitively.
type ClientAddress struct {
	Name              string
	Street            string
	PostalCode        string
	City              string
	Country           string
	BirthDate         string
	NationalID        string
	Insurer           string
	PolicyNumber      string
	Email             string
	DebtorID          string
	Phone             string
	DefaultTariff     string
	Salutation        string
	Language          string
	IntakeDate        string
	LastInvoiceNumber string
}

// BlankClientAddress is the placeholder used when a record references a
// client that has no address row. Invoice generation must not abort for one
// bad record; the document is produced with empty recipient fields so it can
// be corrected by hand.
func BlankClientAddress() *ClientAddress {
	return &ClientAddress{}
}
