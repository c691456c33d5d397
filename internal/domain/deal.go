package domain

import "time"

// Deal is a normalized CRM sales deal
type Deal struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	CounterpartyName  string     `json:"counterpartyName"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	ProjectStartDate  *time.Time `json:"projectStartDate,omitempty"`
	WonDate           *time.Time `json:"wonDate,omitempty"`
	Value             float64    `json:"value"`
	WeightedValue     float64    `json:"weightedValue"`
	Probability       float64    `json:"probability"`
	DurationMonths    int        `json:"durationMonths"`
	InvoicesScheduled bool       `json:"invoicesScheduled"`
	Status            string     `json:"status"`
}

// StartDate is where a won deal's revenue attribution begins: the project
// start date when set, then the won date, then the expected close date
func (d Deal) StartDate() *time.Time {
	if d.ProjectStartDate != nil && !d.ProjectStartDate.IsZero() {
		return d.ProjectStartDate
	}
	if d.WonDate != nil && !d.WonDate.IsZero() {
		return d.WonDate
	}
	return d.ExpectedCloseDate
}

// Duration returns the deal duration in months, never less than 1
func (d Deal) Duration() int {
	if d.DurationMonths < 1 {
		return 1
	}
	return d.DurationMonths
}
