package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mjansen/praktijk-billing/internal/application/billing"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Records          *billing.RecordsUseCase
	GenerateInvoices *billing.GenerateInvoicesUseCase
	PrintInvoices    *billing.PrintInvoicesUseCase
	GenerateOverview *billing.GenerateOverviewUseCase
}

// Router registers the API routes. Single-user practice tooling, no auth
// layer; the server binds to localhost in the default configuration.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Quick entry and its reference lookups
	recordsHandler := NewRecordsHandler(deps.Records)
	api.Post("/entries", recordsHandler.CreateEntry)
	api.Get("/clients", recordsHandler.ListClients)
	api.Get("/clients/:name", recordsHandler.GetClient)
	api.Get("/tariffs", recordsHandler.ListTariffs)

	// Batch runs
	batchHandler := NewBatchHandler(deps.GenerateInvoices, deps.PrintInvoices, deps.GenerateOverview)
	invoices := api.Group("/invoices")
	invoices.Post("/generate", batchHandler.GenerateInvoices)
	invoices.Post("/print", batchHandler.PrintInvoices)
	api.Post("/overview/generate", batchHandler.GenerateOverview)
}
