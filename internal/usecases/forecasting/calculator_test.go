package forecasting

import (
	"context"
	"testing"
	"time"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// fixedNow pins the calculator to March 10, 2024 so the recurring projection
// gate is deterministic
func fixedNow() time.Time {
	return date(2024, time.March, 10)
}

func TestCalculator_CalculateMonth_Invoiced(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		Invoices: []*domain.Invoice{
			{ID: "inv-1", DocNumber: "1042", TxnDate: date(2024, time.March, 15), CustomerName: "Acme", TotalAmount: 1000},
		},
	}

	month := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))

	assert.Equal(t, 1000.0, month.Components.Invoiced)
	assert.Equal(t, 0.0, month.Components.JournalEntries)
	assert.Equal(t, 0.0, month.Components.DelayedCharges)
	assert.Equal(t, 0.0, month.Components.MonthlyRecurring)
	assert.Equal(t, 0.0, month.Components.WonUnscheduled)
	assert.Equal(t, 0.0, month.Components.WeightedSales)

	assert.Len(t, month.Transactions, 1)
	assert.Equal(t, domain.TransactionTypeInvoice, month.Transactions[0].Type)
	assert.Equal(t, "Acme", month.Transactions[0].CounterpartyName)

	// An adjacent month sees nothing from the same dataset
	empty := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.February, 1))
	assert.Equal(t, domain.Components{}, empty.Components)
	assert.Empty(t, empty.Transactions)
}

func TestCalculator_CalculateMonth_JournalEntries(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)

	tests := []struct {
		name     string
		lines    []domain.JournalLine
		expected float64
	}{
		{
			name: "credit to a revenue account adds, debit subtracts",
			lines: []domain.JournalLine{
				{ID: "1", Amount: 500, PostingType: domain.PostingTypeCredit, AccountName: "Service Revenue"},
				{ID: "2", Amount: 200, PostingType: domain.PostingTypeDebit, AccountName: "Consulting Income"},
			},
			expected: 300,
		},
		{
			name: "account number prefix 4 qualifies regardless of name",
			lines: []domain.JournalLine{
				{ID: "1", Amount: 750, PostingType: domain.PostingTypeCredit, AccountName: "Project Billing", AccountNumber: "4100"},
			},
			expected: 750,
		},
		{
			name: "unearned and deferred accounts are excluded",
			lines: []domain.JournalLine{
				{ID: "1", Amount: 400, PostingType: domain.PostingTypeCredit, AccountName: "Unearned Revenue"},
				{ID: "2", Amount: 300, PostingType: domain.PostingTypeCredit, AccountName: "Deferred Income"},
			},
			expected: 0,
		},
		{
			name: "missing posting type is treated as a credit",
			lines: []domain.JournalLine{
				{ID: "1", Amount: 250, AccountName: "Service Revenue"},
			},
			expected: 250,
		},
		{
			name: "non-revenue lines contribute nothing",
			lines: []domain.JournalLine{
				{ID: "1", Amount: 900, PostingType: domain.PostingTypeDebit, AccountName: "Accounts Receivable", AccountNumber: "1200"},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := &Dataset{
				JournalEntries: []*domain.JournalEntry{
					{ID: "je-1", TxnDate: date(2024, time.March, 20), Lines: tt.lines},
				},
			}

			month := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))
			assert.Equal(t, tt.expected, month.Components.JournalEntries)
		})
	}
}

func TestCalculator_CalculateMonth_DelayedChargesUseServiceDate(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		DelayedCharges: []*domain.DelayedCharge{
			{ID: "dc-1", TxnDate: date(2024, time.February, 28), ServiceDate: timePtr(date(2024, time.March, 5)), CustomerName: "Acme", TotalAmount: 1200},
			{ID: "dc-2", TxnDate: date(2024, time.March, 12), CustomerName: "Globex", TotalAmount: 800},
		},
	}

	march := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))
	assert.Equal(t, 2000.0, march.Components.DelayedCharges)

	february := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.February, 1))
	assert.Equal(t, 0.0, february.Components.DelayedCharges)
}

func TestCalculator_CalculateMonth_MonthlyRecurring(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)

	data := &Dataset{
		Invoices: []*domain.Invoice{
			{
				ID:           "inv-mar",
				TxnDate:      date(2024, time.March, 1),
				CustomerName: "Acme",
				TotalAmount:  1500,
				Lines: []domain.InvoiceLine{
					{Amount: 500, ItemName: "Monthly Hosting", Description: "hosting"},
					{Amount: 1000, ItemName: "Project Work", Description: "milestone 2"},
				},
			},
			{
				ID:           "inv-apr",
				TxnDate:      date(2024, time.April, 2),
				CustomerName: "Globex",
				TotalAmount:  200,
				Lines: []domain.InvoiceLine{
					{Amount: 200, ItemName: "Support", Description: "monthly support retainer"},
				},
			},
		},
		JournalEntries: []*domain.JournalEntry{
			{
				ID:      "je-mar",
				TxnDate: date(2024, time.March, 31),
				Lines: []domain.JournalLine{
					{ID: "1", Amount: 300, PostingType: domain.PostingTypeCredit, AccountName: "Monthly Subscription Revenue"},
				},
			},
		},
	}

	// April is strictly future: March baseline (500 + 300) plus April's own
	// recurring line (200)
	april := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.April, 1))
	assert.Equal(t, 1000.0, april.Components.MonthlyRecurring)

	// The current month projects nothing; its recurring billing is already
	// in the invoiced component
	march := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))
	assert.Equal(t, 0.0, march.Components.MonthlyRecurring)

	// Past months never project
	february := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.February, 1))
	assert.Equal(t, 0.0, february.Components.MonthlyRecurring)

	// May has no April baseline lines beyond the 200 retainer
	may := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.May, 1))
	assert.Equal(t, 200.0, may.Components.MonthlyRecurring)
}

func TestCalculator_CalculateMonth_WonUnscheduled(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		WonDeals: []*domain.Deal{
			{
				ID:               "deal-1",
				Title:            "Platform build",
				CounterpartyName: "Acme",
				Value:            9000,
				DurationMonths:   3,
				WonDate:          timePtr(date(2024, time.January, 15)),
			},
			{
				ID:                "deal-2",
				Title:             "Already scheduled",
				Value:             5000,
				DurationMonths:    2,
				WonDate:           timePtr(date(2024, time.January, 10)),
				InvoicesScheduled: true,
			},
		},
	}

	for _, m := range []time.Month{time.January, time.February, time.March} {
		month := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, m, 1))
		assert.Equal(t, 3000.0, month.Components.WonUnscheduled, "month %s", m)
	}

	april := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.April, 1))
	assert.Equal(t, 0.0, april.Components.WonUnscheduled)

	december := calc.CalculateMonth(context.Background(), "comp-1", data, date(2023, time.December, 1))
	assert.Equal(t, 0.0, december.Components.WonUnscheduled)
}

func TestCalculator_CalculateMonth_WonUnscheduledPrefersProjectStart(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		WonDeals: []*domain.Deal{
			{
				ID:               "deal-1",
				Value:            6000,
				DurationMonths:   2,
				WonDate:          timePtr(date(2024, time.January, 5)),
				ProjectStartDate: timePtr(date(2024, time.March, 1)),
			},
		},
	}

	january := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.January, 1))
	assert.Equal(t, 0.0, january.Components.WonUnscheduled)

	march := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))
	assert.Equal(t, 3000.0, march.Components.WonUnscheduled)
}

func TestCalculator_CalculateMonth_WeightedSales(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		OpenDeals: []*domain.Deal{
			{
				ID:                "deal-open",
				Title:             "Expansion",
				CounterpartyName:  "Globex",
				Value:             10000,
				WeightedValue:     5000,
				Probability:       50,
				DurationMonths:    2,
				ExpectedCloseDate: timePtr(date(2024, time.May, 20)),
			},
			{
				ID:             "deal-no-close",
				Value:          4000,
				WeightedValue:  2000,
				DurationMonths: 2,
			},
		},
	}

	for _, m := range []time.Month{time.May, time.June} {
		month := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, m, 1))
		assert.Equal(t, 2500.0, month.Components.WeightedSales, "month %s", m)
	}

	july := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.July, 1))
	assert.Equal(t, 0.0, july.Components.WeightedSales)
}

func TestCalculator_CalculateMonth_Idempotent(t *testing.T) {
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		Invoices: []*domain.Invoice{
			{ID: "inv-1", TxnDate: date(2024, time.March, 15), TotalAmount: 1000},
		},
		WonDeals: []*domain.Deal{
			{ID: "deal-1", Value: 9000, DurationMonths: 3, WonDate: timePtr(date(2024, time.March, 2))},
		},
	}

	first := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))
	second := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.March, 1))

	assert.Equal(t, first.Components, second.Components)
	assert.Len(t, second.Transactions, len(first.Transactions))
}

func TestCalculator_ShareConservation(t *testing.T) {
	// An awkward division never drifts by more than a rounding unit per month
	calc := NewCalculatorAt(fixedNow)
	data := &Dataset{
		WonDeals: []*domain.Deal{
			{ID: "deal-1", Value: 1000, DurationMonths: 3, WonDate: timePtr(date(2024, time.January, 1))},
		},
	}

	var sum float64
	for offset := 0; offset < 3; offset++ {
		month := calc.CalculateMonth(context.Background(), "comp-1", data, date(2024, time.January+time.Month(offset), 1))
		sum += month.Components.WonUnscheduled
	}

	assert.InDelta(t, 1000.0, sum, 3*0.5)
}

func TestCalculator_TotalRespectsWeightedToggle(t *testing.T) {
	components := domain.Components{
		Invoiced:         100,
		JournalEntries:   50,
		DelayedCharges:   25,
		MonthlyRecurring: 10,
		WonUnscheduled:   5,
		WeightedSales:    60,
	}

	assert.Equal(t, 190.0, components.Total(false))
	assert.Equal(t, 250.0, components.Total(true))
}
