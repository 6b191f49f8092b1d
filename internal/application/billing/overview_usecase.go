package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainbilling "github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
	"github.com/mjansen/praktijk-billing/pkg/logger"
)

// overviewFilename is the fixed archive name of the period overview.
const overviewFilename = "overzicht_consulten.pdf"

// GenerateOverviewUseCase compiles and renders the consolidated period
// overview: per-client detail rows with a fresh VAT split, subtotal breaks
// per client and a grand total. Independent of invoice boundaries.
type GenerateOverviewUseCase struct {
	recordRepo repository.ServiceRecordRepository
	tariffRepo repository.TariffRepository
	renderer   DocumentRenderer
	archive    DocumentArchive
	log        *logger.Logger
}

// NewGenerateOverviewUseCase wires the use case.
func NewGenerateOverviewUseCase(
	recordRepo repository.ServiceRecordRepository,
	tariffRepo repository.TariffRepository,
	renderer DocumentRenderer,
	archive DocumentArchive,
	log *logger.Logger,
) *GenerateOverviewUseCase {
	return &GenerateOverviewUseCase{
		recordRepo: recordRepo,
		tariffRepo: tariffRepo,
		renderer:   renderer,
		archive:    archive,
		log:        log,
	}
}

// Run builds the overview and archives the rendered document. A
// reconciliation failure inside the builder fails the whole run: it means
// the data is corrupt, not that one row is off.
func (uc *GenerateOverviewUseCase) Run(ctx context.Context) (*RunResult, error) {
	tariffs, err := uc.tariffRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load tariffs: %w", err)
	}
	catalog := domainbilling.NewCatalog(tariffs)

	records, err := uc.recordRepo.ListOrderedByDate()
	if err != nil {
		return nil, fmt.Errorf("load service records: %w", err)
	}

	warnings := catalog.TariffMisses(records)
	if warnings > 0 {
		uc.log.Warn().
			Int("records", warnings).
			Msg("records with unknown tariff codes, default VAT rate applied")
	}

	rows, totals, err := domainbilling.BuildOverview(records, catalog)
	if err != nil {
		return nil, err
	}

	data, err := uc.renderer.RenderOverview(ctx, &OverviewDocument{
		Rows:      rows,
		Totals:    totals,
		IssueDate: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("render overview: %w", err)
	}

	path, err := uc.archive.Save(overviewFilename, data)
	if err != nil {
		return nil, fmt.Errorf("archive overview: %w", err)
	}

	result := &RunResult{
		RunID:    uuid.New().String(),
		Produced: []ProducedDocument{{Path: path}},
		Warnings: warnings,
	}
	uc.log.Info().
		Str("run_id", result.RunID).
		Str("path", path).
		Str("gross_total", totals.Gross.StringFixed(2)).
		Msg("period overview generated")
	return result, nil
}
