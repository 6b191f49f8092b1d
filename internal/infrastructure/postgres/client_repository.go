package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mjansen/praktijk-billing/internal/domain"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implements ClientRepository (usable with pool or tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository builds the adapter. Pass a pool or tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `name, street, postal_code, city, country, birth_date,
	national_id, insurer, policy_number, email, debtor_id, phone,
	default_tariff, salutation, language, intake_date, last_invoice_number`

func scanClient(row pgx.Row) (*entity.ClientAddress, error) {
	var c entity.ClientAddress
	err := row.Scan(
		&c.Name, &c.Street, &c.PostalCode, &c.City, &c.Country, &c.BirthDate,
		&c.NationalID, &c.Insurer, &c.PolicyNumber, &c.Email, &c.DebtorID, &c.Phone,
		&c.DefaultTariff, &c.Salutation, &c.Language, &c.IntakeDate, &c.LastInvoiceNumber,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByName looks a client up by name, case-insensitively (ILIKE, no
// wildcards). Returns (nil, nil) when no client matches.
func (r *ClientRepo) FindByName(name string) (*entity.ClientAddress, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE name ILIKE $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return c, nil
}

// ListAll returns all clients ordered by name.
func (r *ClientRepo) ListAll() ([]*entity.ClientAddress, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.ClientAddress
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Upsert inserts the client or updates it when the name already exists.
func (r *ClientRepo) Upsert(client *entity.ClientAddress) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (name) DO UPDATE SET
			street = EXCLUDED.street,
			postal_code = EXCLUDED.postal_code,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			birth_date = EXCLUDED.birth_date,
			national_id = EXCLUDED.national_id,
			insurer = EXCLUDED.insurer,
			policy_number = EXCLUDED.policy_number,
			email = EXCLUDED.email,
			debtor_id = EXCLUDED.debtor_id,
			phone = EXCLUDED.phone,
			default_tariff = EXCLUDED.default_tariff,
			salutation = EXCLUDED.salutation,
			language = EXCLUDED.language,
			intake_date = EXCLUDED.intake_date,
			last_invoice_number = EXCLUDED.last_invoice_number`
	_, err := r.q.Exec(context.Background(), query,
		client.Name, client.Street, client.PostalCode, client.City, client.Country,
		client.BirthDate, client.NationalID, client.Insurer, client.PolicyNumber,
		client.Email, client.DebtorID, client.Phone, client.DefaultTariff,
		client.Salutation, client.Language, client.IntakeDate, client.LastInvoiceNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}

// UpdateLastInvoiceNumber sets the client's last-known invoice number.
func (r *ClientRepo) UpdateLastInvoiceNumber(clientName, invoiceNumber string) error {
	// A record can reference a client without an address row; updating
	// zero rows is fine then.
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET last_invoice_number = $2 WHERE name = $1`,
		clientName, invoiceNumber,
	)
	if err != nil {
		return fmt.Errorf("update last invoice number: %w", err)
	}
	return nil
}

// MaxDebtorID returns the highest numeric debtor id in use, 0 when none.
func (r *ClientRepo) MaxDebtorID() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(debtor_id::int), 0) FROM clients WHERE debtor_id ~ '^[0-9]+$'`,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max debtor id: %w", err)
	}
	return max, nil
}
