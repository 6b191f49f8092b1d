package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainbilling "github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
	"github.com/mjansen/praktijk-billing/pkg/logger"
)

// PrintInvoicesUseCase re-renders the invoice documents for the current
// record set: same grouping and boundaries as the generate batch, but no
// delivery and no ledger writes. Used to reprint after manual corrections.
type PrintInvoicesUseCase struct {
	recordRepo repository.ServiceRecordRepository
	tariffRepo repository.TariffRepository
	clientRepo repository.ClientRepository
	renderer   DocumentRenderer
	archive    DocumentArchive
	opts       Options
	log        *logger.Logger
}

// NewPrintInvoicesUseCase wires the use case.
func NewPrintInvoicesUseCase(
	recordRepo repository.ServiceRecordRepository,
	tariffRepo repository.TariffRepository,
	clientRepo repository.ClientRepository,
	renderer DocumentRenderer,
	archive DocumentArchive,
	opts Options,
	log *logger.Logger,
) *PrintInvoicesUseCase {
	if opts.PaymentTermDays <= 0 {
		opts.PaymentTermDays = 14
	}
	return &PrintInvoicesUseCase{
		recordRepo: recordRepo,
		tariffRepo: tariffRepo,
		clientRepo: clientRepo,
		renderer:   renderer,
		archive:    archive,
		opts:       opts,
		log:        log,
	}
}

// Run re-renders all invoices and archives them. Per-invoice failures are
// reported in the result; siblings are still attempted.
func (uc *PrintInvoicesUseCase) Run(ctx context.Context) (*RunResult, error) {
	in, err := loadBatch(uc.recordRepo, uc.tariffRepo, uc.clientRepo)
	if err != nil {
		return nil, err
	}

	result := &RunResult{RunID: uuid.New().String()}
	if in.tariffMisses > 0 {
		result.Warnings += in.tariffMisses
		uc.log.Warn().
			Int("records", in.tariffMisses).
			Msg("records with unknown tariff codes, default VAT rate applied")
	}
	now := time.Now()

	for _, b := range in.boundaries {
		group := domainbilling.BuildInvoiceGroup(in.rows, b, in.catalog)
		group.Address = in.addresses.find(b.ClientName)
		if group.Address == nil {
			group.Address = entity.BlankClientAddress()
			result.Warnings++
		}

		doc := &InvoiceDocument{
			Group:        group,
			IssueDate:    now,
			PaymentDate:  now.AddDate(0, 0, uc.opts.PaymentTermDays),
			CashReceived: decimal.Zero,
			BalanceDue:   group.GrossTotal,
		}

		data, err := uc.renderer.RenderInvoice(ctx, doc)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedDocument{
				ClientName:    b.ClientName,
				InvoiceNumber: b.InvoiceNumber,
				Reason:        fmt.Sprintf("render: %v", err),
			})
			continue
		}
		path, err := uc.archive.Save(invoiceFilename(group.InvoiceNumber), data)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedDocument{
				ClientName:    b.ClientName,
				InvoiceNumber: b.InvoiceNumber,
				Reason:        fmt.Sprintf("archive: %v", err),
			})
			continue
		}
		result.Produced = append(result.Produced, ProducedDocument{
			ClientName:    group.ClientName,
			InvoiceNumber: group.InvoiceNumber,
			Path:          path,
		})
	}

	uc.log.Info().
		Str("run_id", result.RunID).
		Int("produced", len(result.Produced)).
		Int("skipped", len(result.Skipped)).
		Msg("invoice reprint finished")
	return result, nil
}
