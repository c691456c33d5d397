package domain

import "time"

// Posting types on a journal-entry line
const (
	PostingTypeDebit  = "Debit"
	PostingTypeCredit = "Credit"
)

// Invoice is a normalized accounting invoice
type Invoice struct {
	ID           string        `json:"id"`
	DocNumber    string        `json:"docNumber"`
	TxnDate      time.Time     `json:"txnDate"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
	CustomerName string        `json:"customerName"`
	TotalAmount  float64       `json:"totalAmount"`
	Balance      float64       `json:"balance"`
	Lines        []InvoiceLine `json:"lines,omitempty"`
}

// InvoiceLine is a single billed line on an invoice
type InvoiceLine struct {
	Amount      float64 `json:"amount"`
	ItemName    string  `json:"itemName"`
	Description string  `json:"description"`
}

// JournalEntry is a normalized accounting journal entry
type JournalEntry struct {
	ID          string        `json:"id"`
	DocNumber   string        `json:"docNumber"`
	TxnDate     time.Time     `json:"txnDate"`
	PrivateNote string        `json:"privateNote,omitempty"`
	Lines       []JournalLine `json:"lines"`
}

// JournalLine is a single debit/credit posting inside a journal entry
type JournalLine struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	PostingType   string  `json:"postingType"` // Debit, Credit, or empty when the source omitted it
	AccountID     string  `json:"accountId"`
	AccountName   string  `json:"accountName"`
	AccountNumber string  `json:"accountNumber"`
	Description   string  `json:"description"`
}

// DelayedCharge is unbilled work captured in the accounting system ahead of
// invoicing
type DelayedCharge struct {
	ID           string     `json:"id"`
	TxnDate      time.Time  `json:"txnDate"`
	ServiceDate  *time.Time `json:"serviceDate,omitempty"`
	CustomerName string     `json:"customerName"`
	TotalAmount  float64    `json:"totalAmount"`
	Billed       bool       `json:"billed"`
}

// EffectiveDate is the service date when present, otherwise the transaction
// date
func (d DelayedCharge) EffectiveDate() time.Time {
	if d.ServiceDate != nil && !d.ServiceDate.IsZero() {
		return *d.ServiceDate
	}
	return d.TxnDate
}

// Account is a normalized chart-of-accounts entry
type Account struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	AccountNumber  string  `json:"accountNumber"`
	Classification string  `json:"classification"` // Asset, Liability, Revenue, ...
	AccountType    string  `json:"accountType"`
	CurrentBalance float64 `json:"currentBalance"`
}

// AccountFilter restricts a chart-of-accounts fetch
type AccountFilter struct {
	Classifications []string
}
