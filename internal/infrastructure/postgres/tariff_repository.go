package postgres

import (
	"context"
	"fmt"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
)

var _ repository.TariffRepository = (*TariffRepo)(nil)

// TariffRepo implements TariffRepository (usable with pool or tx).
type TariffRepo struct {
	q Querier
}

// NewTariffRepository builds the adapter. Pass a pool or tx (Querier).
func NewTariffRepository(q Querier) *TariffRepo {
	return &TariffRepo{q: q}
}

// ListAll returns the tariff table. The invoicing category is derived from
// the code here so it never goes stale against edited descriptions.
func (r *TariffRepo) ListAll() ([]*entity.TariffEntry, error) {
	query := `SELECT code, unit_price, vat_percentage, description FROM tariffs`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tariffs: %w", err)
	}
	defer rows.Close()
	var list []*entity.TariffEntry
	for rows.Next() {
		var t entity.TariffEntry
		if err := rows.Scan(&t.Code, &t.UnitPrice, &t.VATPercentage, &t.Description); err != nil {
			return nil, fmt.Errorf("scan tariff: %w", err)
		}
		t.Category = entity.CategoryForCode(t.Code)
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Upsert inserts the tariff or updates it when the code already exists.
func (r *TariffRepo) Upsert(tariff *entity.TariffEntry) error {
	query := `
		INSERT INTO tariffs (code, unit_price, vat_percentage, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE SET
			unit_price = EXCLUDED.unit_price,
			vat_percentage = EXCLUDED.vat_percentage,
			description = EXCLUDED.description`
	_, err := r.q.Exec(context.Background(), query,
		tariff.Code, tariff.UnitPrice, tariff.VATPercentage, tariff.Description,
	)
	if err != nil {
		return fmt.Errorf("upsert tariff: %w", err)
	}
	return nil
}
