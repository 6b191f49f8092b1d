package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjansen/praktijk-billing/internal/application/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	apphttp "github.com/mjansen/praktijk-billing/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

type stubRecordRepo struct {
	created []*entity.ServiceRecord
}

func (s *stubRecordRepo) ListOrderedByDate() ([]*entity.ServiceRecord, error) { return nil, nil }
func (s *stubRecordRepo) Create(r *entity.ServiceRecord) error {
	s.created = append(s.created, r)
	return nil
}

type stubTariffRepo struct {
	tariffs []*entity.TariffEntry
}

func (s *stubTariffRepo) ListAll() ([]*entity.TariffEntry, error) { return s.tariffs, nil }
func (s *stubTariffRepo) Upsert(*entity.TariffEntry) error        { return nil }

type stubClientRepo struct {
	clients []*entity.ClientAddress
}

func (s *stubClientRepo) FindByName(name string) (*entity.ClientAddress, error) {
	for _, c := range s.clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}
func (s *stubClientRepo) ListAll() ([]*entity.ClientAddress, error)      { return s.clients, nil }
func (s *stubClientRepo) Upsert(*entity.ClientAddress) error             { return nil }
func (s *stubClientRepo) UpdateLastInvoiceNumber(_, _ string) error      { return nil }
func (s *stubClientRepo) MaxDebtorID() (int, error)                      { return 0, nil }

// buildTestApp wires the records routes onto a minimal Fiber app with stub
// repositories behind the use case.
func buildTestApp(records *stubRecordRepo, tariffs *stubTariffRepo, clients *stubClientRepo) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewRecordsHandler(billing.NewRecordsUseCase(records, tariffs, clients))
	api := app.Group("/api")
	api.Post("/entries", handler.CreateEntry)
	api.Get("/clients", handler.ListClients)
	api.Get("/clients/:name", handler.GetClient)
	api.Get("/tariffs", handler.ListTariffs)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/entries
// ──────────────────────────────────────────────────────────────────────────────

// A valid entry is stored with the net/VAT split computed server-side.
func TestCreateEntry_ComputesSplit(t *testing.T) {
	records := &stubRecordRepo{}
	app := buildTestApp(records, &stubTariffRepo{}, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodPost, "/api/entries",
		`{"date":"2026-01-15","client_name":"Bos","gross_amount":"121.00"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, records.created, 1, "one record must be stored")

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "100", body["net_amount"], "net of 121 gross at 21% must be 100")
	assert.Equal(t, "21", body["vat_amount"], "VAT must be the remainder")
}

// An explicitly posted 0 percent is a genuine zero-rate entry, not an
// omitted field, and must not fall back to 21.
func TestCreateEntry_ExplicitZeroPercentKept(t *testing.T) {
	records := &stubRecordRepo{}
	app := buildTestApp(records, &stubTariffRepo{}, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodPost, "/api/entries",
		`{"date":"2026-01-15","client_name":"Bos","gross_amount":"50.00","vat_percentage":"0"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "50", body["net_amount"], "zero-rate gross is all net")
	assert.Equal(t, "0", body["vat_amount"])
}

// Without a posted percentage the rate comes from the tariff table.
func TestCreateEntry_PercentageResolvedFromTariffCode(t *testing.T) {
	tariffs := &stubTariffRepo{tariffs: []*entity.TariffEntry{
		{Code: "CONSULT", UnitPrice: decimal.RequireFromString("60.50"), VATPercentage: decimal.NewFromInt(9)},
	}}
	app := buildTestApp(&stubRecordRepo{}, tariffs, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodPost, "/api/entries",
		`{"date":"2026-01-15","client_name":"Bos","tariff_code":"CONSULT","gross_amount":"109.00"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "100", body["net_amount"], "109 gross at the tariff's 9 percent")
	assert.Equal(t, "9", body["vat_amount"])
}

// A missing client name fails validation before anything is stored.
func TestCreateEntry_MissingName_Returns400(t *testing.T) {
	records := &stubRecordRepo{}
	app := buildTestApp(records, &stubTariffRepo{}, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodPost, "/api/entries",
		`{"date":"2026-01-15","gross_amount":"50.00"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, records.created, "nothing may be stored on validation failure")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestCreateEntry_MalformedBody_Returns400(t *testing.T) {
	app := buildTestApp(&stubRecordRepo{}, &stubTariffRepo{}, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodPost, "/api/entries", `{not json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests client and tariff lookups
// ──────────────────────────────────────────────────────────────────────────────

// Lookup by name is case-insensitive, like the store's ILIKE query.
func TestGetClient_CaseInsensitive(t *testing.T) {
	clients := &stubClientRepo{clients: []*entity.ClientAddress{
		{Name: "Bos", City: "Utrecht", Email: "bos@example.nl"},
	}}
	app := buildTestApp(&stubRecordRepo{}, &stubTariffRepo{}, clients)

	resp := doJSON(t, app, http.MethodGet, "/api/clients/BOS", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Bos", body["name"])
	assert.Equal(t, "Utrecht", body["city"])
}

func TestGetClient_Unknown_Returns404(t *testing.T) {
	app := buildTestApp(&stubRecordRepo{}, &stubTariffRepo{}, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodGet, "/api/clients/Niemand", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func TestListTariffs_ReturnsTable(t *testing.T) {
	tariffs := &stubTariffRepo{tariffs: []*entity.TariffEntry{
		{Code: "PGB1", UnitPrice: decimal.RequireFromString("85.00"), VATPercentage: decimal.NewFromInt(21)},
		{Code: "CONSULT", UnitPrice: decimal.RequireFromString("60.50"), VATPercentage: decimal.NewFromInt(9)},
	}}
	app := buildTestApp(&stubRecordRepo{}, tariffs, &stubClientRepo{})

	resp := doJSON(t, app, http.MethodGet, "/api/tariffs", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "PGB1", body[0]["code"])
}
