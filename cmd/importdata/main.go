// importdata loads the practice's reference CSVs (clients and tariffs) into
// PostgreSQL. Rows are upserted: insert when new, update on the unique key.
//
// Usage: go run ./cmd/importdata [data-dir]
// By default it reads data/clienten.csv and data/tarieven.csv. The files use
// a semicolon delimiter, a decimal comma and Latin-1 encoding, as exported
// by the practice's spreadsheet.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mjansen/praktijk-billing/internal/domain/entity"
	"github.com/mjansen/praktijk-billing/internal/infrastructure/postgres"
	"github.com/mjansen/praktijk-billing/pkg/config"
)

func main() {
	dataDir := "data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "PostgreSQL connection: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	tariffCount, err := importTariffs(postgres.NewTariffRepository(pool), filepath.Join(dataDir, "tarieven.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "import tariffs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d tariffs\n", tariffCount)

	clientCount, err := importClients(postgres.NewClientRepository(pool), filepath.Join(dataDir, "clienten.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "import clients: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d clients\n", clientCount)
}

// csvRows reads a semicolon-delimited, Latin-1 encoded CSV and returns one
// map per row, keyed by the trimmed header names.
func csvRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1 // trailing columns are often ragged in these exports

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseAmount parses a decimal-comma amount ("85,50"). Empty input is zero.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.Replace(s, ",", ".", 1))
}

func importTariffs(repo *postgres.TariffRepo, path string) (int, error) {
	rows, err := csvRows(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		code := row["item"]
		if code == "" {
			continue
		}
		price, err := parseAmount(row["bedrag"])
		if err != nil {
			return count, fmt.Errorf("tariff %s: amount: %w", code, err)
		}
		pct, err := parseAmount(row["BTW (incl) in %"])
		if err != nil {
			return count, fmt.Errorf("tariff %s: vat percentage: %w", code, err)
		}
		t := &entity.TariffEntry{
			Code:          code,
			UnitPrice:     price,
			VATPercentage: pct,
			Description:   row["omschrijving op factuur"],
			Category:      entity.CategoryForCode(code),
		}
		if err := repo.Upsert(t); err != nil {
			return count, fmt.Errorf("tariff %s: %w", code, err)
		}
		count++
	}
	return count, nil
}

func importClients(repo *postgres.ClientRepo, path string) (int, error) {
	rows, err := csvRows(path)
	if err != nil {
		return 0, err
	}

	// Existing numeric debtor ids, so duplicates in the CSV get a fresh one.
	existing, err := repo.ListAll()
	if err != nil {
		return 0, err
	}
	taken := make(map[int]bool, len(existing))
	for _, c := range existing {
		if n, err := strconv.Atoi(c.DebtorID); err == nil {
			taken[n] = true
		}
	}
	maxID, err := repo.MaxDebtorID()
	if err != nil {
		return 0, err
	}
	nextID := maxID + 1

	count := 0
	for _, row := range rows {
		name := row["naam client"]
		if name == "" {
			continue
		}

		debtorID := row["Klant-ID"]
		n, numErr := strconv.Atoi(debtorID)
		if debtorID == "" || (numErr == nil && taken[n]) {
			debtorID = strconv.Itoa(nextID)
			taken[nextID] = true
			nextID++
		} else if numErr == nil {
			taken[n] = true
		}

		country := row["Land"]
		if country == "" {
			country = "Nederland"
		}
		language := row["taal"]
		if language == "" {
			language = "NL"
		}

		c := &entity.ClientAddress{
			Name:              name,
			Street:            row["Straatnaam"],
			PostalCode:        row["Postcode"],
			City:              row["Woonplaats"],
			Country:           country,
			Phone:             row["Telefoonnr."],
			BirthDate:         row["Geb.datum"],
			NationalID:        row["BSN.nr."],
			Insurer:           row["verzekeraar"],
			PolicyNumber:      row["polis.nr."],
			DefaultTariff:     row["standaard-tarief"],
			Salutation:        row["aanhef"],
			DebtorID:          debtorID,
			Email:             row["Emailadres"],
			Language:          language,
			IntakeDate:        row["intake-datum"],
			LastInvoiceNumber: row["laatste factuurnr"],
		}
		if err := repo.Upsert(c); err != nil {
			return count, fmt.Errorf("client %s: %w", name, err)
		}
		count++
	}
	return count, nil
}
