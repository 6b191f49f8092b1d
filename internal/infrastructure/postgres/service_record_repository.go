package postgres

import (
	"context"
	"fmt"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
)

var _ repository.ServiceRecordRepository = (*ServiceRecordRepo)(nil)

// ServiceRecordRepo implements ServiceRecordRepository (usable with pool or tx).
type ServiceRecordRepo struct {
	q Querier
}

// NewServiceRecordRepository builds the adapter. Pass a pool or tx (Querier).
func NewServiceRecordRepository(q Querier) *ServiceRecordRepo {
	return &ServiceRecordRepo{q: q}
}

// ListOrderedByDate returns all service records sorted ascending by the
// date of service. The batch components rely on this order.
func (r *ServiceRecordRepo) ListOrderedByDate() ([]*entity.ServiceRecord, error) {
	query := `
		SELECT date_of_service, client_name, time_of_day, cash, amount_due,
		       tariff_code, gross_amount, net_amount, vat_amount,
		       invoice_number, invoice_date, debtor_number
		FROM service_records ORDER BY date_of_service`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list service records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceRecord
	for rows.Next() {
		var rec entity.ServiceRecord
		if err := rows.Scan(
			&rec.Date, &rec.ClientName, &rec.Time, &rec.Cash, &rec.AmountDue,
			&rec.TariffCode, &rec.GrossAmount, &rec.NetAmount, &rec.VATAmount,
			&rec.InvoiceNumber, &rec.InvoiceDate, &rec.DebtorNumber,
		); err != nil {
			return nil, fmt.Errorf("scan service record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Create persists a new service record (quick entry).
func (r *ServiceRecordRepo) Create(record *entity.ServiceRecord) error {
	query := `
		INSERT INTO service_records (date_of_service, client_name, time_of_day, cash,
			amount_due, tariff_code, gross_amount, net_amount, vat_amount,
			invoice_number, invoice_date, debtor_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		record.Date, record.ClientName, record.Time, record.Cash,
		record.AmountDue, record.TariffCode, record.GrossAmount, record.NetAmount,
		record.VATAmount, record.InvoiceNumber, record.InvoiceDate, record.DebtorNumber,
	)
	if err != nil {
		return fmt.Errorf("insert service record: %w", err)
	}
	return nil
}
