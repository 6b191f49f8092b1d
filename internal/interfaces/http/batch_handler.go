package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mjansen/praktijk-billing/internal/application/billing"
	"github.com/mjansen/praktijk-billing/internal/application/dto"
	"github.com/mjansen/praktijk-billing/internal/domain"
)

// BatchHandler triggers the document batch runs: generating and mailing the
// invoices, reprinting them without side effects, and compiling the period
// overview.
type BatchHandler struct {
	generate *billing.GenerateInvoicesUseCase
	print    *billing.PrintInvoicesUseCase
	overview *billing.GenerateOverviewUseCase
}

// NewBatchHandler builds the handler.
func NewBatchHandler(
	generate *billing.GenerateInvoicesUseCase,
	print *billing.PrintInvoicesUseCase,
	overview *billing.GenerateOverviewUseCase,
) *BatchHandler {
	return &BatchHandler{generate: generate, print: print, overview: overview}
}

// GenerateInvoices runs the full batch: render, archive, mail, ledger.
// POST /api/invoices/generate
func (h *BatchHandler) GenerateInvoices(c *fiber.Ctx) error {
	result, err := h.generate.Run(c.Context())
	return runResponse(c, result, err)
}

// PrintInvoices renders and archives the invoices without mailing them or
// touching the ledger.
// POST /api/invoices/print
func (h *BatchHandler) PrintInvoices(c *fiber.Ctx) error {
	result, err := h.print.Run(c.Context())
	return runResponse(c, result, err)
}

// GenerateOverview compiles the consolidated period report.
// POST /api/overview/generate
func (h *BatchHandler) GenerateOverview(c *fiber.Ctx) error {
	result, err := h.overview.Run(c.Context())
	return runResponse(c, result, err)
}

// runResponse maps a batch outcome to HTTP. A run-level error with a partial
// result still reports the documents that were produced before the failure.
func runResponse(c *fiber.Ctx, result *billing.RunResult, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrReconciliation) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RECONCILIATION", Message: err.Error()})
		}
		resp := dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
		if result != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":  resp,
				"result": runResultToResponse(result),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return c.JSON(runResultToResponse(result))
}

func runResultToResponse(r *billing.RunResult) dto.RunResultResponse {
	out := dto.RunResultResponse{
		RunID:         r.RunID,
		Warnings:      r.Warnings,
		LedgerApplied: r.LedgerApplied,
	}
	for _, p := range r.Produced {
		out.Produced = append(out.Produced, dto.ProducedDocumentResponse{
			ClientName:    p.ClientName,
			InvoiceNumber: p.InvoiceNumber,
			Path:          p.Path,
			Mailed:        p.Mailed,
			DeliveryError: p.DeliveryError,
		})
	}
	for _, s := range r.Skipped {
		out.Skipped = append(out.Skipped, dto.SkippedDocumentResponse{
			ClientName:    s.ClientName,
			InvoiceNumber: s.InvoiceNumber,
			Reason:        s.Reason,
		})
	}
	return out
}
