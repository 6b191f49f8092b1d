package billing

import (
	"time"

	"github.com/mjansen/praktijk-billing/internal/application/dto"
	"github.com/mjansen/praktijk-billing/internal/domain"
	domainbilling "github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
)

// RecordsUseCase covers the quick-entry form and its reference lookups:
// inserting a service record with its VAT split precomputed, and listing
// clients and tariffs.
type RecordsUseCase struct {
	recordRepo repository.ServiceRecordRepository
	tariffRepo repository.TariffRepository
	clientRepo repository.ClientRepository
}

// NewRecordsUseCase wires the use case.
func NewRecordsUseCase(
	recordRepo repository.ServiceRecordRepository,
	tariffRepo repository.TariffRepository,
	clientRepo repository.ClientRepository,
) *RecordsUseCase {
	return &RecordsUseCase{
		recordRepo: recordRepo,
		tariffRepo: tariffRepo,
		clientRepo: clientRepo,
	}
}

// CreateEntry validates the quick entry, computes the net/VAT split from
// the posted gross and percentage and stores the record. An absent
// percentage resolves through the tariff table from the posted code (21
// when neither is known); an explicit 0 percent stays 0, the overview
// handles zero-rate splits. The invoice date column is stamped with today,
// like the entry form did.
func (uc *RecordsUseCase) CreateEntry(in dto.QuickEntryRequest) (*dto.EntryResponse, error) {
	if in.ClientName == "" || in.Date == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.GrossAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	pct := domainbilling.DefaultVATPercentage
	if in.VATPercentage != nil {
		pct = *in.VATPercentage
	} else if in.TariffCode != "" {
		tariffs, err := uc.tariffRepo.ListAll()
		if err != nil {
			return nil, err
		}
		pct = domainbilling.NewCatalog(tariffs).VATPercentage(in.TariffCode)
	}
	net, vat := domainbilling.SplitVAT(in.GrossAmount, pct)

	now := time.Now()
	record := &entity.ServiceRecord{
		Date:          date,
		ClientName:    in.ClientName,
		Time:          in.Time,
		Cash:          in.Cash,
		AmountDue:     in.AmountDue,
		TariffCode:    in.TariffCode,
		GrossAmount:   in.GrossAmount,
		NetAmount:     net,
		VATAmount:     vat,
		InvoiceNumber: in.InvoiceNumber,
		InvoiceDate:   &now,
		DebtorNumber:  in.DebtorNumber,
	}
	if err := uc.recordRepo.Create(record); err != nil {
		return nil, err
	}
	return &dto.EntryResponse{
		Date:          in.Date,
		ClientName:    record.ClientName,
		GrossAmount:   record.GrossAmount,
		NetAmount:     record.NetAmount,
		VATAmount:     record.VATAmount,
		InvoiceNumber: record.InvoiceNumber,
	}, nil
}

// FindClient looks a client up by name, case-insensitively.
func (uc *RecordsUseCase) FindClient(name string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return clientToResponse(client), nil
}

// ListClients returns all clients, for the entry form.
func (uc *RecordsUseCase) ListClients() ([]*dto.ClientResponse, error) {
	clients, err := uc.clientRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientToResponse(c))
	}
	return out, nil
}

// ListTariffs returns the tariff table, for the entry form.
func (uc *RecordsUseCase) ListTariffs() ([]*dto.TariffResponse, error) {
	tariffs, err := uc.tariffRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TariffResponse, 0, len(tariffs))
	for _, t := range tariffs {
		out = append(out, &dto.TariffResponse{
			Code:          t.Code,
			UnitPrice:     t.UnitPrice,
			VATPercentage: t.VATPercentage,
			Description:   t.Description,
		})
	}
	return out, nil
}

func clientToResponse(c *entity.ClientAddress) *dto.ClientResponse {
	return &dto.ClientResponse{
		Name:              c.Name,
		Street:            c.Street,
		PostalCode:        c.PostalCode,
		City:              c.City,
		Country:           c.Country,
		Email:             c.Email,
		DebtorID:          c.DebtorID,
		LastInvoiceNumber: c.LastInvoiceNumber,
	}
}
