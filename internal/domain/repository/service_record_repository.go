package repository

import "github.com/mjansen/praktijk-billing/internal/domain/entity"

// ServiceRecordRepository is the persistence port for service records.
type ServiceRecordRepository interface {
	// ListOrderedByDate returns the full record set sorted ascending by
	// service date. The batch components rely on that sort order.
	ListOrderedByDate() ([]*entity.ServiceRecord, error)
	Create(record *entity.ServiceRecord) error
}
