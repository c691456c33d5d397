package quickbooks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	qbdomain "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/domain"
	"github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/qbclient"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
)

// Data source names surfaced in dataSourceErrors
const (
	SourceInvoices       = "quickbooks.invoices"
	SourceJournalEntries = "quickbooks.journalEntries"
	SourceDelayedCharges = "quickbooks.delayedCharges"
	SourceAccounts       = "quickbooks.accounts"
)

// QuickBooksIntegrator is the Accounting Data Adapter: it fetches raw
// records for a date range and normalizes them at this boundary. Each method
// fails independently; a missing credential surfaces as domain.ErrNotConnected
// and any other failure as a *domain.SourceError for its source.
type QuickBooksIntegrator interface {
	FetchInvoices(ctx context.Context, companyID string, start, end time.Time) ([]*domain.Invoice, error)
	FetchJournalEntries(ctx context.Context, companyID string, start, end time.Time) ([]*domain.JournalEntry, error)
	FetchDelayedCharges(ctx context.Context, companyID string, start, end time.Time) ([]*domain.DelayedCharge, error)
	FetchAccounts(ctx context.Context, companyID string, filter *domain.AccountFilter) ([]*domain.Account, error)
}

type Integrator struct {
	cfg    *config.Config
	client qbclient.Client
}

func New(cfg *config.Config, client qbclient.Client) QuickBooksIntegrator {
	return &Integrator{
		cfg:    cfg,
		client: client,
	}
}

func (s *Integrator) FetchInvoices(ctx context.Context, companyID string, start, end time.Time) ([]*domain.Invoice, error) {
	raw, err := s.client.QueryInvoices(ctx, companyID, start, end)
	if err != nil {
		return nil, wrapSourceError(SourceInvoices, err)
	}

	invoices := make([]*domain.Invoice, 0, len(raw))
	for _, record := range raw {
		invoices = append(invoices, normalizeInvoice(record))
	}

	return invoices, nil
}

func (s *Integrator) FetchJournalEntries(ctx context.Context, companyID string, start, end time.Time) ([]*domain.JournalEntry, error) {
	raw, err := s.client.QueryJournalEntries(ctx, companyID, start, end)
	if err != nil {
		return nil, wrapSourceError(SourceJournalEntries, err)
	}

	entries := make([]*domain.JournalEntry, 0, len(raw))
	for _, record := range raw {
		entries = append(entries, normalizeJournalEntry(record))
	}

	return entries, nil
}

func (s *Integrator) FetchDelayedCharges(ctx context.Context, companyID string, start, end time.Time) ([]*domain.DelayedCharge, error) {
	raw, err := s.client.QueryDelayedCharges(ctx, companyID, start, end)
	if err != nil {
		return nil, wrapSourceError(SourceDelayedCharges, err)
	}

	charges := make([]*domain.DelayedCharge, 0, len(raw))
	for _, record := range raw {
		charges = append(charges, normalizeDelayedCharge(record))
	}

	return charges, nil
}

func (s *Integrator) FetchAccounts(ctx context.Context, companyID string, filter *domain.AccountFilter) ([]*domain.Account, error) {
	var classifications []string
	if filter != nil {
		classifications = filter.Classifications
	}

	raw, err := s.client.QueryAccounts(ctx, companyID, classifications)
	if err != nil {
		return nil, wrapSourceError(SourceAccounts, err)
	}

	accounts := make([]*domain.Account, 0, len(raw))
	for _, record := range raw {
		accounts = append(accounts, &domain.Account{
			ID:             record.ID,
			Name:           record.Name,
			AccountNumber:  record.AcctNum,
			Classification: record.Classification,
			AccountType:    record.AccountType,
			CurrentBalance: record.CurrentBalance,
		})
	}

	return accounts, nil
}

// wrapSourceError keeps ErrNotConnected distinguishable from transient
// remote failures
func wrapSourceError(source string, err error) error {
	if errors.Is(err, domain.ErrNotConnected) {
		return err
	}
	return domain.NewSourceError(source, err)
}

func normalizeInvoice(record qbdomain.Invoice) *domain.Invoice {
	invoice := &domain.Invoice{
		ID:           record.ID,
		DocNumber:    record.DocNumber,
		TxnDate:      parseWireDate(record.TxnDate, "invoice", record.ID),
		CustomerName: record.CustomerRef.Name,
		TotalAmount:  record.TotalAmt,
		Balance:      record.Balance,
	}

	if record.DueDate != "" {
		dueDate := parseWireDate(record.DueDate, "invoice", record.ID)
		invoice.DueDate = &dueDate
	}

	for _, line := range record.Line {
		if line.DetailType != "SalesItemLineDetail" {
			continue
		}

		invoiceLine := domain.InvoiceLine{
			Amount:      line.Amount,
			Description: line.Description,
		}
		if line.SalesItemLineDetail != nil {
			invoiceLine.ItemName = line.SalesItemLineDetail.ItemRef.Name
		}
		invoice.Lines = append(invoice.Lines, invoiceLine)
	}

	return invoice
}

func normalizeJournalEntry(record qbdomain.JournalEntry) *domain.JournalEntry {
	entry := &domain.JournalEntry{
		ID:          record.ID,
		DocNumber:   record.DocNumber,
		TxnDate:     parseWireDate(record.TxnDate, "journal entry", record.ID),
		PrivateNote: record.PrivateNote,
	}

	for _, line := range record.Line {
		if line.JournalEntryLineDetail == nil {
			continue
		}

		accountName := line.JournalEntryLineDetail.AccountRef.Name
		entry.Lines = append(entry.Lines, domain.JournalLine{
			ID:            line.ID,
			Amount:        line.Amount,
			PostingType:   line.JournalEntryLineDetail.PostingType,
			AccountID:     line.JournalEntryLineDetail.AccountRef.Value,
			AccountName:   accountName,
			AccountNumber: accountNumberFromName(accountName),
			Description:   line.Description,
		})
	}

	return entry
}

// accountNumberFromName extracts the numeric account code QuickBooks prepends
// to account names when account numbers are enabled, so "4100 Project
// Billing" yields "4100". The AccountRef on a journal line carries no AcctNum
// field; the name prefix is the only place the code travels on this wire.
func accountNumberFromName(name string) string {
	name = strings.TrimSpace(name)

	end := 0
	for end < len(name) && (name[end] >= '0' && name[end] <= '9' || name[end] == '.') {
		end++
	}

	code := strings.TrimRight(name[:end], ".")
	if code == "" {
		return ""
	}

	// A code must stand alone before the account name, not start a word
	// like "401k Plan"
	if end < len(name) && name[end] != ' ' && name[end] != ':' && name[end] != '-' {
		return ""
	}

	return code
}

func normalizeDelayedCharge(record qbdomain.Charge) *domain.DelayedCharge {
	charge := &domain.DelayedCharge{
		ID:           record.ID,
		TxnDate:      parseWireDate(record.TxnDate, "delayed charge", record.ID),
		CustomerName: record.CustomerRef.Name,
		TotalAmount:  record.TotalAmt,
		Billed:       record.Billed,
	}

	if record.ServiceDate != "" {
		serviceDate := parseWireDate(record.ServiceDate, "delayed charge", record.ID)
		charge.ServiceDate = &serviceDate
	}

	return charge
}

// parseWireDate parses a YYYY-MM-DD date in local time so calendar-date
// comparisons downstream never drift across timezones. Malformed dates are
// logged and come back zero rather than failing the whole fetch.
func parseWireDate(value, recordKind, recordID string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"record_kind": recordKind,
			"record_id":   recordID,
			"value":       value,
		}).Warn("QuickBooks record has malformed date")
		return time.Time{}
	}
	return parsed
}
