package domain

import "time"

// PairMonthFormat is the month key format used in pair net effects
const PairMonthFormat = "2006-01"

// PairableEntry is a journal entry annotated with its designated unearned
// revenue line and revenue line. Entries lacking either annotation never pair.
type PairableEntry struct {
	Entry        *JournalEntry `json:"entry"`
	UnearnedLine *JournalLine  `json:"unearnedLine"`
	RevenueLine  *JournalLine  `json:"revenueLine"`
}

// NetEffect describes the revenue-recognition shift a matched pair produces:
// amount moved out of fromMonth and into toMonth
type NetEffect struct {
	FromMonth string  `json:"fromMonth"`
	ToMonth   string  `json:"toMonth"`
	Amount    float64 `json:"amount"`
}

// JournalEntryPair is a matched debit/credit pair of journal entries shifting
// unearned revenue between months. Each entry belongs to at most one pair.
type JournalEntryPair struct {
	Debit     *PairableEntry `json:"debit"`
	Credit    *PairableEntry `json:"credit"`
	NetEffect NetEffect      `json:"netEffect"`
}

// PairingResult separates matched pairs from unmatched singles
type PairingResult struct {
	Pairs   []*JournalEntryPair `json:"pairs"`
	Singles []*PairableEntry    `json:"singles"`
}

// MonthKeyOf formats a date as a pair net-effect month key
func MonthKeyOf(t time.Time) string {
	return t.Format(PairMonthFormat)
}
