package domain

import (
	"errors"
	"time"
)

// Errors returned by settings validation
var (
	ErrMissingAccountRole = errors.New("journal entry account role is not configured")
)

// JournalEntryAccounts maps the logical account roles used by journal-entry
// creation to accounting-system account IDs. All four named roles are
// required before journal-entry operations are permitted.
type JournalEntryAccounts struct {
	UnearnedRevenue        string   `json:"unearnedRevenue"`
	ProjectIncomePoints    string   `json:"projectIncomePoints"`
	RecurringIncomeSupport string   `json:"recurringIncomeSupport"`
	RecurringIncomePoints  string   `json:"recurringIncomePoints"`
	SubAccounts            []string `json:"subAccounts,omitempty"`
}

// Validate rejects configurations with missing roles up front instead of
// letting the gap surface deep inside request handling
func (a JournalEntryAccounts) Validate() error {
	roles := []string{
		a.UnearnedRevenue,
		a.ProjectIncomePoints,
		a.RecurringIncomeSupport,
		a.RecurringIncomePoints,
	}
	for _, accountID := range roles {
		if accountID == "" {
			return ErrMissingAccountRole
		}
	}
	return nil
}

// Contains reports whether an account ID is referenced by any role or
// sub-account
func (a JournalEntryAccounts) Contains(accountID string) bool {
	if accountID == "" {
		return false
	}
	if accountID == a.UnearnedRevenue ||
		accountID == a.ProjectIncomePoints ||
		accountID == a.RecurringIncomeSupport ||
		accountID == a.RecurringIncomePoints {
		return true
	}
	for _, sub := range a.SubAccounts {
		if accountID == sub {
			return true
		}
	}
	return false
}

// CompanySettings is the stored per-company configuration
type CompanySettings struct {
	CompanyID            string               `json:"companyId"`
	CompanyName          string               `json:"companyName"`
	JournalEntryAccounts JournalEntryAccounts `json:"journalEntryAccounts"`
	ArchiveRetentionDays int                  `json:"archiveRetentionDays"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// RetentionDays returns the archive retention window, defaulting to one year
func (s CompanySettings) RetentionDays() int {
	if s.ArchiveRetentionDays <= 0 {
		return 365
	}
	return s.ArchiveRetentionDays
}
