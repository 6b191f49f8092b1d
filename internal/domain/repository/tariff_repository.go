package repository

import "github.com/mjansen/praktijk-billing/internal/domain/entity"

// TariffRepository is the persistence port for tariff reference data.
type TariffRepository interface {
	ListAll() ([]*entity.TariffEntry, error)
	// Upsert inserts the tariff or updates it when the code already exists.
	Upsert(tariff *entity.TariffEntry) error
}
