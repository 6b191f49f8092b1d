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

// Options tunes the invoice batch.
type Options struct {
	PaymentTermDays int    // payment date on the invoice = issue date + term
	MailSubject     string // subject line for delivered invoices
}

// GenerateInvoicesUseCase runs the full invoice batch: aggregate the record
// set, resolve invoice boundaries, build and render one document per
// boundary, archive and mail it, and finally persist the per-client ledger
// updates in a single transaction.
//
// The batch reads everything fresh and mutates nothing during computation;
// only the archive writes and the closing ledger transaction touch external
// state. A failing invoice never stops its siblings.
type GenerateInvoicesUseCase struct {
	recordRepo repository.ServiceRecordRepository
	tariffRepo repository.TariffRepository
	clientRepo repository.ClientRepository
	renderer   DocumentRenderer
	archive    DocumentArchive
	mailer     MailSender
	ledgerTx   LedgerTxRunner
	opts       Options
	log        *logger.Logger
}

// NewGenerateInvoicesUseCase wires the use case.
func NewGenerateInvoicesUseCase(
	recordRepo repository.ServiceRecordRepository,
	tariffRepo repository.TariffRepository,
	clientRepo repository.ClientRepository,
	renderer DocumentRenderer,
	archive DocumentArchive,
	mailer MailSender,
	ledgerTx LedgerTxRunner,
	opts Options,
	log *logger.Logger,
) *GenerateInvoicesUseCase {
	if opts.PaymentTermDays <= 0 {
		opts.PaymentTermDays = 14
	}
	if opts.MailSubject == "" {
		opts.MailSubject = "Factuur"
	}
	return &GenerateInvoicesUseCase{
		recordRepo: recordRepo,
		tariffRepo: tariffRepo,
		clientRepo: clientRepo,
		renderer:   renderer,
		archive:    archive,
		mailer:     mailer,
		ledgerTx:   ledgerTx,
		opts:       opts,
		log:        log,
	}
}

// batchInput is everything a batch reads up front.
type batchInput struct {
	catalog      *domainbilling.Catalog
	rows         []domainbilling.AggregateRow
	boundaries   []domainbilling.InvoiceBoundary
	addresses    *addressIndex
	tariffMisses int // records whose code had no tariff row; the default rate applied
}

// loadBatch reads tariffs, records and client addresses and precomputes the
// aggregated row sequence with its invoice boundaries.
func loadBatch(
	recordRepo repository.ServiceRecordRepository,
	tariffRepo repository.TariffRepository,
	clientRepo repository.ClientRepository,
) (*batchInput, error) {
	tariffs, err := tariffRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load tariffs: %w", err)
	}
	catalog := domainbilling.NewCatalog(tariffs)

	records, err := recordRepo.ListOrderedByDate()
	if err != nil {
		return nil, fmt.Errorf("load service records: %w", err)
	}

	clients, err := clientRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	rows := domainbilling.Aggregate(records)
	return &batchInput{
		catalog:      catalog,
		rows:         rows,
		boundaries:   domainbilling.ResolveBoundaries(rows, catalog),
		addresses:    newAddressIndex(clients),
		tariffMisses: catalog.TariffMisses(records),
	}, nil
}

// Run executes the batch and returns the per-item run summary. An error is
// returned only for run-level failures (loading reference data, or the
// ledger transaction); per-invoice failures land in the result instead.
func (uc *GenerateInvoicesUseCase) Run(ctx context.Context) (*RunResult, error) {
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
	var generated []*domainbilling.InvoiceGroup

	for _, b := range in.boundaries {
		group := domainbilling.BuildInvoiceGroup(in.rows, b, in.catalog)

		group.Address = in.addresses.find(b.ClientName)
		if group.Address == nil {
			// Produce the document anyway, with blank recipient fields,
			// so it can be corrected by hand.
			group.Address = entity.BlankClientAddress()
			result.Warnings++
			uc.log.Warn().
				Str("client", b.ClientName).
				Str("invoice", b.InvoiceNumber).
				Msg("no address row for client, invoice gets blank recipient fields")
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

		produced := ProducedDocument{
			ClientName:    group.ClientName,
			InvoiceNumber: group.InvoiceNumber,
			Path:          path,
		}

		// Empty recipient address: delivery is skipped, not failed. A nil
		// mailer disables delivery entirely (no SMTP configured).
		if email := group.Address.Email; uc.mailer != nil && email != "" {
			if err := uc.mailer.Send(email, uc.opts.MailSubject, mailBody(group), invoiceFilename(group.InvoiceNumber), data); err != nil {
				produced.DeliveryError = err.Error()
				uc.log.Error().Err(err).
					Str("client", group.ClientName).
					Str("invoice", group.InvoiceNumber).
					Msg("invoice delivery failed")
			} else {
				produced.Mailed = true
			}
		}

		result.Produced = append(result.Produced, produced)
		generated = append(generated, group)
	}

	// Ledger updates only after all documents have been produced, in one
	// transaction. The original registers the ledger before mailing, so a
	// delivery failure does not roll the number back.
	updates := domainbilling.LedgerUpdates(generated)
	if len(updates) > 0 {
		err := uc.ledgerTx.RunLedger(ctx, func(clients repository.ClientRepository) error {
			for _, u := range updates {
				if err := clients.UpdateLastInvoiceNumber(u.ClientName, u.InvoiceNumber); err != nil {
					return fmt.Errorf("client %s: %w", u.ClientName, err)
				}
			}
			return nil
		})
		if err != nil {
			return result, fmt.Errorf("apply ledger updates: %w", err)
		}
		result.LedgerApplied = len(updates)
	}

	uc.log.Info().
		Str("run_id", result.RunID).
		Int("produced", len(result.Produced)).
		Int("skipped", len(result.Skipped)).
		Int("warnings", result.Warnings).
		Int("ledger_applied", result.LedgerApplied).
		Msg("invoice batch finished")
	return result, nil
}

func invoiceFilename(invoiceNumber string) string {
	return fmt.Sprintf("factuur_%s.pdf", invoiceNumber)
}

func mailBody(group *domainbilling.InvoiceGroup) string {
	return fmt.Sprintf("Beste %s,\n\nHierbij factuur %s als bijlage.\n\nMet vriendelijke groet", firstName(group.ClientName), group.InvoiceNumber)
}

// firstName returns everything before the first space, the whole name when
// there is none.
func firstName(name string) string {
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	return name
}
