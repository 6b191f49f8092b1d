package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/mjansen/praktijk-billing/internal/domain/billing"
	"github.com/mjansen/praktijk-billing/internal/domain/repository"
)

// InvoiceDocument is the fully resolved context handed to the renderer for
// one invoice: the line-item group with its address, plus the payment
// fields printed in the footer.
type InvoiceDocument struct {
	Group        *domainbilling.InvoiceGroup
	IssueDate    time.Time
	PaymentDate  time.Time // issue date + configured payment term
	CashReceived decimal.Decimal
	BalanceDue   decimal.Decimal
}

// OverviewDocument is the renderer context for the period overview.
type OverviewDocument struct {
	Rows      []domainbilling.OverviewRow
	Totals    domainbilling.OverviewTotals
	IssueDate time.Time
}

// DocumentRenderer turns a resolved document context into opaque bytes.
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
	RenderOverview(ctx context.Context, doc *OverviewDocument) ([]byte, error)
}

// DocumentArchive persists rendered document bytes and returns an
// identifier (the archived path) for the run result.
type DocumentArchive interface {
	Save(filename string, data []byte) (string, error)
}

// MailSender delivers a rendered document to a recipient. Callers skip the
// call entirely when the recipient address is empty.
type MailSender interface {
	Send(to, subject, body, attachmentName string, attachment []byte) error
}

// LedgerTxRunner applies the batch's ledger updates inside one database
// transaction, so a failure leaves no partial ledger state behind.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(clients repository.ClientRepository) error) error
}
