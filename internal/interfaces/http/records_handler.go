package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mjansen/praktijk-billing/internal/application/billing"
	"github.com/mjansen/praktijk-billing/internal/application/dto"
	"github.com/mjansen/praktijk-billing/internal/domain"
)

// RecordsHandler serves the quick-entry form endpoints: posting a service
// record and the client and tariff lookups behind the form.
type RecordsHandler struct {
	uc *billing.RecordsUseCase
}

// NewRecordsHandler builds the handler.
func NewRecordsHandler(uc *billing.RecordsUseCase) *RecordsHandler {
	return &RecordsHandler{uc: uc}
}

// CreateEntry stores one delivered service with its VAT split precomputed.
// POST /api/entries
func (h *RecordsHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.QuickEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	entry, err := h.uc.CreateEntry(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client name, date and a non-negative gross amount are required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListClients returns all client reference rows.
// GET /api/clients
func (h *RecordsHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.uc.ListClients()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(clients)
}

// GetClient looks one client up by name, case-insensitively.
// GET /api/clients/:name
func (h *RecordsHandler) GetClient(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name required"})
	}
	client, err := h.uc.FindClient(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(client)
}

// ListTariffs returns the tariff table.
// GET /api/tariffs
func (h *RecordsHandler) ListTariffs(c *fiber.Ctx) error {
	tariffs, err := h.uc.ListTariffs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(tariffs)
}
