package domain

import (
	"time"

	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

// Transaction types. The first three mirror the accounting record kinds, the
// rest mirror the forecast-only components they feed.
const (
	TransactionTypeInvoice          = "invoice"
	TransactionTypeJournalEntry     = "journalEntry"
	TransactionTypeDelayedCharge    = "delayedCharge"
	TransactionTypeMonthlyRecurring = "monthlyRecurring"
	TransactionTypeWonUnscheduled   = "wonUnscheduled"
	TransactionTypeWeightedSales    = "weightedSales"
)

// Component names, used as keys in cache transaction maps
const (
	ComponentInvoiced         = "invoiced"
	ComponentJournalEntries   = "journalEntries"
	ComponentDelayedCharges   = "delayedCharges"
	ComponentMonthlyRecurring = "monthlyRecurring"
	ComponentWonUnscheduled   = "wonUnscheduled"
	ComponentWeightedSales    = "weightedSales"
)

// Components is the six-way revenue breakdown for one calendar month
type Components struct {
	Invoiced         float64 `json:"invoiced"`
	JournalEntries   float64 `json:"journalEntries"`
	DelayedCharges   float64 `json:"delayedCharges"`
	MonthlyRecurring float64 `json:"monthlyRecurring"`
	WonUnscheduled   float64 `json:"wonUnscheduled"`
	WeightedSales    float64 `json:"weightedSales"`
}

// Total sums the components. Weighted-sales inclusion is a caller choice and
// is never stored with the month.
func (c Components) Total(includeWeighted bool) float64 {
	total := c.Invoiced + c.JournalEntries + c.DelayedCharges + c.MonthlyRecurring + c.WonUnscheduled
	if includeWeighted {
		total += c.WeightedSales
	}
	return total
}

// RevenueMonth is the computed revenue picture for one (company, month)
type RevenueMonth struct {
	CompanyID    string         `json:"companyId"`
	MonthStart   time.Time      `json:"monthStart"`
	Components   Components     `json:"components"`
	Transactions []*Transaction `json:"transactions,omitempty"`
}

// NewRevenueMonth normalizes the month date to local midnight of day 1
func NewRevenueMonth(companyID string, month time.Time) *RevenueMonth {
	return &RevenueMonth{
		CompanyID:  companyID,
		MonthStart: utils.MonthStart(month),
	}
}

// Transaction is one normalized accounting/CRM record contributing to exactly
// one component of exactly one month. Derived, never persisted on its own.
type Transaction struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Date             time.Time `json:"date"`
	Amount           float64   `json:"amount"`
	CounterpartyName string    `json:"counterpartyName"`
	Description      string    `json:"description"`
	Details          any       `json:"details,omitempty"`
}

// DataSourceError records a source that failed during a computation whose
// remaining sources still produced a usable (partial) result
type DataSourceError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// ClientRevenue is the per-client slice of a month's revenue
type ClientRevenue struct {
	Name       string     `json:"name"`
	Components Components `json:"components"`
}
