package domain

import (
	"strings"
	"time"
)

const cacheKeyDateFormat = "2006-01-02"

// CacheEntry is one transaction-detail cache slot, keyed by
// (companyId, monthKey, asOfDate). MonthKey is either a single month-start
// date or a composite "start:end" range key.
type CacheEntry struct {
	ID           string                    `json:"id"`
	CompanyID    string                    `json:"companyId"`
	MonthKey     string                    `json:"monthKey"`
	AsOfDate     time.Time                 `json:"asOfDate"`
	Transactions map[string][]*Transaction `json:"transactions"`
	Clients      map[string]*ClientRevenue `json:"clients"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// SingleMonthKey builds the cache key for one month
func SingleMonthKey(monthStart time.Time) string {
	return monthStart.Format(cacheKeyDateFormat)
}

// RangeMonthKey builds the composite key for a month range
func RangeMonthKey(start, end time.Time) string {
	return start.Format(cacheKeyDateFormat) + ":" + end.Format(cacheKeyDateFormat)
}

// IsRangeKey reports whether a month key addresses a range
func IsRangeKey(monthKey string) bool {
	return strings.Contains(monthKey, ":")
}
