package repository

import "github.com/mjansen/praktijk-billing/internal/domain/entity"

// ClientRepository is the persistence port for client reference data and
// the per-client invoice ledger.
type ClientRepository interface {
	// FindByName looks a client up by name, case-insensitively.
	// Returns (nil, nil) when no client matches.
	FindByName(name string) (*entity.ClientAddress, error)
	ListAll() ([]*entity.ClientAddress, error)
	// Upsert inserts the client or updates it when the name already exists.
	Upsert(client *entity.ClientAddress) error
	// UpdateLastInvoiceNumber sets the client's last-known invoice number.
	UpdateLastInvoiceNumber(clientName, invoiceNumber string) error
	// MaxDebtorID returns the highest numeric debtor id in use, 0 if none.
	MaxDebtorID() (int, error)
}
