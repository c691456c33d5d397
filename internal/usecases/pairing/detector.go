package pairing

import (
	"math"
	"strings"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

const (
	amountTolerance = 0.01
	maxPairSpanDays = 60
)

// Detector matches offsetting journal entries that shift unearned revenue
// between months. Matching is greedy first-fit over the input order, which
// callers must keep sorted by transaction date.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect walks the entries once. Each unpaired entry scans forward for the
// first later entry satisfying every pairing predicate; matched entries are
// consumed and everything left over becomes a single.
func (d *Detector) Detect(entries []*domain.PairableEntry) *domain.PairingResult {
	result := &domain.PairingResult{
		Pairs:   make([]*domain.JournalEntryPair, 0),
		Singles: make([]*domain.PairableEntry, 0),
	}

	used := make([]bool, len(entries))

	for i, candidate := range entries {
		if used[i] {
			continue
		}

		if !pairable(candidate) {
			result.Singles = append(result.Singles, candidate)
			used[i] = true
			continue
		}

		matched := false
		for j := i + 1; j < len(entries); j++ {
			if used[j] || !pairable(entries[j]) {
				continue
			}

			if !matches(candidate, entries[j]) {
				continue
			}

			used[i], used[j] = true, true
			result.Pairs = append(result.Pairs, buildPair(candidate, entries[j]))
			matched = true
			break
		}

		if !matched {
			result.Singles = append(result.Singles, candidate)
			used[i] = true
		}
	}

	return result
}

func pairable(entry *domain.PairableEntry) bool {
	return entry.Entry != nil && entry.UnearnedLine != nil && entry.RevenueLine != nil
}

// matches applies the five pairing predicates: equal unearned amount within
// tolerance, equal line description, opposite posting on the unearned line,
// same revenue account, and transaction dates within 60 days
func matches(a, b *domain.PairableEntry) bool {
	if math.Abs(a.UnearnedLine.Amount-b.UnearnedLine.Amount) > amountTolerance {
		return false
	}

	if !strings.EqualFold(strings.TrimSpace(a.UnearnedLine.Description), strings.TrimSpace(b.UnearnedLine.Description)) {
		return false
	}

	if !oppositePostings(a.UnearnedLine.PostingType, b.UnearnedLine.PostingType) {
		return false
	}

	if a.RevenueLine.AccountID != b.RevenueLine.AccountID {
		return false
	}

	span := utils.DaysBetween(a.Entry.TxnDate, b.Entry.TxnDate)
	if span < 0 {
		span = -span
	}

	return span <= maxPairSpanDays
}

func oppositePostings(a, b string) bool {
	return (a == domain.PostingTypeDebit && b == domain.PostingTypeCredit) ||
		(a == domain.PostingTypeCredit && b == domain.PostingTypeDebit)
}

// buildPair assigns the debit and credit sides by posting type, never by
// input order. The net effect always moves revenue out of the credit side's
// month and into the debit side's month.
func buildPair(a, b *domain.PairableEntry) *domain.JournalEntryPair {
	debit, credit := a, b
	if a.UnearnedLine.PostingType == domain.PostingTypeCredit {
		debit, credit = b, a
	}

	return &domain.JournalEntryPair{
		Debit:  debit,
		Credit: credit,
		NetEffect: domain.NetEffect{
			FromMonth: domain.MonthKeyOf(credit.Entry.TxnDate),
			ToMonth:   domain.MonthKeyOf(debit.Entry.TxnDate),
			Amount:    credit.UnearnedLine.Amount,
		},
	}
}

// Annotate prepares raw journal entries for detection by locating each
// entry's unearned revenue line and revenue line from the company's account
// configuration. Entries lacking either line still appear in the output so
// they surface as singles.
func Annotate(entries []*domain.JournalEntry, accounts *domain.JournalEntryAccounts) []*domain.PairableEntry {
	annotated := make([]*domain.PairableEntry, 0, len(entries))

	for _, entry := range entries {
		pairableEntry := &domain.PairableEntry{Entry: entry}

		for i := range entry.Lines {
			line := &entry.Lines[i]

			if line.AccountID == accounts.UnearnedRevenue && pairableEntry.UnearnedLine == nil {
				pairableEntry.UnearnedLine = line
				continue
			}

			if line.AccountID != accounts.UnearnedRevenue &&
				accounts.Contains(line.AccountID) && pairableEntry.RevenueLine == nil {
				pairableEntry.RevenueLine = line
			}
		}

		annotated = append(annotated, pairableEntry)
	}

	return annotated
}
