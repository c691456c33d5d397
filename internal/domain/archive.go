package domain

import "time"

// OverdueDeal is an open deal whose expected close date has passed
type OverdueDeal struct {
	Deal        *Deal `json:"deal"`
	DaysOverdue int   `json:"daysOverdue"`
}

// StaleDelayedCharge is an old delayed charge still awaiting invoicing
type StaleDelayedCharge struct {
	Charge  *DelayedCharge `json:"charge"`
	AgeDays int            `json:"ageDays"`
}

// ExceptionsReport groups the records needing manual attention
type ExceptionsReport struct {
	OverdueDeals        []*OverdueDeal        `json:"overdueDeals"`
	StaleDelayedCharges []*StaleDelayedCharge `json:"staleDelayedCharges"`
	WonUnscheduled      []*Deal               `json:"wonUnscheduled"`
}

// AgedReceivables summarizes open invoice balances by age bucket
type AgedReceivables struct {
	Current    float64 `json:"current"`
	Days1To30  float64 `json:"days1to30"`
	Days31To60 float64 `json:"days31to60"`
	Days61To90 float64 `json:"days61to90"`
	Over90Days float64 `json:"over90Days"`
	TotalDue   float64 `json:"totalDue"`
}

// BalanceSummary is the balances section of a daily snapshot
type BalanceSummary struct {
	AssetAccounts     []*Account      `json:"assetAccounts"`
	LiabilityAccounts []*Account      `json:"liabilityAccounts"`
	AgedReceivables   AgedReceivables `json:"agedReceivables"`
}

// ArchiveSnapshot is an immutable daily snapshot of the full computed state
// for one company. Same-day recomputation upserts in place; older snapshots
// are never rewritten.
type ArchiveSnapshot struct {
	ID          string            `json:"id"`
	CompanyID   string            `json:"companyId"`
	ArchiveDate time.Time         `json:"archiveDate"` // local midnight
	Months      []*RevenueMonth   `json:"months"`
	Exceptions  *ExceptionsReport `json:"exceptions"`
	Balances    *BalanceSummary   `json:"balances"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
