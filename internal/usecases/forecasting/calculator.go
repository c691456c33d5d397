package forecasting

import (
	"context"
	"strings"
	"time"

	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

// Dataset holds every record already fetched for a forecast window. The
// calculator never performs I/O: callers fetch once and compute as many
// months as they need from the same dataset.
type Dataset struct {
	Invoices       []*domain.Invoice
	JournalEntries []*domain.JournalEntry
	DelayedCharges []*domain.DelayedCharge
	WonDeals       []*domain.Deal
	OpenDeals      []*domain.Deal
}

// Calculator classifies and nets raw accounting and CRM records into the
// six-component revenue breakdown of a calendar month. All component rules
// are independent; nothing here pre-sums them.
type Calculator struct {
	now func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// NewCalculatorAt pins the calculator's notion of "the current month", which
// gates the monthly-recurring projection
func NewCalculatorAt(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// CalculateMonth computes the six components and their underlying
// transactions for the month containing monthDate
func (c *Calculator) CalculateMonth(ctx context.Context, companyID string, data *Dataset, monthDate time.Time) *domain.RevenueMonth {
	month := domain.NewRevenueMonth(companyID, monthDate)

	month.Components.Invoiced = c.sumInvoiced(data, month)
	month.Components.JournalEntries = c.sumJournalEntries(ctx, data, month)
	month.Components.DelayedCharges = c.sumDelayedCharges(data, month)
	month.Components.MonthlyRecurring = c.sumMonthlyRecurring(data, month)
	month.Components.WonUnscheduled = c.sumWonUnscheduled(data, month)
	month.Components.WeightedSales = c.sumWeightedSales(data, month)

	return month
}

func (c *Calculator) sumInvoiced(data *Dataset, month *domain.RevenueMonth) float64 {
	var total float64
	for _, invoice := range data.Invoices {
		if !utils.WithinMonth(invoice.TxnDate, month.MonthStart) {
			continue
		}

		total += invoice.TotalAmount
		month.Transactions = append(month.Transactions, &domain.Transaction{
			ID:               invoice.ID,
			Type:             domain.TransactionTypeInvoice,
			Date:             invoice.TxnDate,
			Amount:           invoice.TotalAmount,
			CounterpartyName: invoice.CustomerName,
			Description:      invoice.DocNumber,
		})
	}

	return total
}

func (c *Calculator) sumJournalEntries(ctx context.Context, data *Dataset, month *domain.RevenueMonth) float64 {
	var total float64
	for _, entry := range data.JournalEntries {
		if !utils.WithinMonth(entry.TxnDate, month.MonthStart) {
			continue
		}

		for i := range entry.Lines {
			line := &entry.Lines[i]
			if !isRevenueLine(line) {
				continue
			}

			amount := signedLineAmount(ctx, entry, line)
			total += amount

			month.Transactions = append(month.Transactions, &domain.Transaction{
				ID:               entry.ID + ":" + line.ID,
				Type:             domain.TransactionTypeJournalEntry,
				Date:             entry.TxnDate,
				Amount:           amount,
				CounterpartyName: line.AccountName,
				Description:      line.Description,
				Details: map[string]any{
					"docNumber":   entry.DocNumber,
					"accountId":   line.AccountID,
					"postingType": line.PostingType,
				},
			})
		}
	}

	return total
}

func (c *Calculator) sumDelayedCharges(data *Dataset, month *domain.RevenueMonth) float64 {
	var total float64
	for _, charge := range data.DelayedCharges {
		if !utils.WithinMonth(charge.EffectiveDate(), month.MonthStart) {
			continue
		}

		total += charge.TotalAmount
		month.Transactions = append(month.Transactions, &domain.Transaction{
			ID:               charge.ID,
			Type:             domain.TransactionTypeDelayedCharge,
			Date:             charge.EffectiveDate(),
			Amount:           charge.TotalAmount,
			CounterpartyName: charge.CustomerName,
			Description:      "delayed charge",
		})
	}

	return total
}

// sumMonthlyRecurring projects recurring revenue for strictly-future months.
// The baseline is the preceding month's actual recurring-tagged lines; any
// recurring lines already booked inside the target month itself augment the
// baseline rather than replace it. Current and past months return 0 because
// their recurring billing is already inside the invoiced component.
func (c *Calculator) sumMonthlyRecurring(data *Dataset, month *domain.RevenueMonth) float64 {
	currentMonth := utils.MonthStart(c.now())
	if !month.MonthStart.After(currentMonth) {
		return 0
	}

	previousMonth := utils.AddMonths(month.MonthStart, -1)

	baseline := c.recurringInvoiceAmount(data, previousMonth, nil) +
		c.recurringJournalAmount(data, previousMonth)
	augmentation := c.recurringInvoiceAmount(data, month.MonthStart, month)

	if baseline == 0 && augmentation == 0 {
		return 0
	}

	if baseline != 0 {
		month.Transactions = append(month.Transactions, &domain.Transaction{
			ID:          "recurring-baseline:" + month.MonthStart.Format("2006-01"),
			Type:        domain.TransactionTypeMonthlyRecurring,
			Date:        month.MonthStart,
			Amount:      baseline,
			Description: "recurring baseline carried from " + previousMonth.Format("2006-01"),
		})
	}

	return baseline + augmentation
}

// recurringInvoiceAmount sums recurring-tagged invoice lines inside the given
// month. When txnMonth is non-nil the matched lines are also recorded as
// transactions of that month.
func (c *Calculator) recurringInvoiceAmount(data *Dataset, monthStart time.Time, txnMonth *domain.RevenueMonth) float64 {
	var total float64
	for _, invoice := range data.Invoices {
		if !utils.WithinMonth(invoice.TxnDate, monthStart) {
			continue
		}

		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			if !isRecurringTagged(line.ItemName, line.Description) {
				continue
			}

			total += line.Amount
			if txnMonth != nil {
				txnMonth.Transactions = append(txnMonth.Transactions, &domain.Transaction{
					ID:               invoice.ID,
					Type:             domain.TransactionTypeMonthlyRecurring,
					Date:             invoice.TxnDate,
					Amount:           line.Amount,
					CounterpartyName: invoice.CustomerName,
					Description:      line.Description,
				})
			}
		}
	}

	return total
}

func (c *Calculator) recurringJournalAmount(data *Dataset, monthStart time.Time) float64 {
	var total float64
	for _, entry := range data.JournalEntries {
		if !utils.WithinMonth(entry.TxnDate, monthStart) {
			continue
		}

		for i := range entry.Lines {
			line := &entry.Lines[i]
			if !isRevenueLine(line) {
				continue
			}

			if !isRecurringTagged(line.AccountName, line.Description) {
				continue
			}

			if line.PostingType == domain.PostingTypeDebit {
				total -= line.Amount
			} else {
				total += line.Amount
			}
		}
	}

	return total
}

// sumWonUnscheduled divides each won-but-unscheduled deal's value evenly
// across its duration, starting at the deal's start date
func (c *Calculator) sumWonUnscheduled(data *Dataset, month *domain.RevenueMonth) float64 {
	var total float64
	for _, deal := range data.WonDeals {
		if deal.InvoicesScheduled {
			continue
		}

		start := deal.StartDate()
		if start == nil || start.IsZero() {
			continue
		}

		share, hit := monthlyShare(deal.Value, deal.Duration(), utils.MonthStart(*start), month.MonthStart)
		if !hit {
			continue
		}

		total += share
		month.Transactions = append(month.Transactions, &domain.Transaction{
			ID:               deal.ID,
			Type:             domain.TransactionTypeWonUnscheduled,
			Date:             *start,
			Amount:           share,
			CounterpartyName: deal.CounterpartyName,
			Description:      deal.Title,
		})
	}

	return total
}

// sumWeightedSales attributes each open deal's weighted value forward from
// its expected close month for the deal's duration
func (c *Calculator) sumWeightedSales(data *Dataset, month *domain.RevenueMonth) float64 {
	var total float64
	for _, deal := range data.OpenDeals {
		if deal.ExpectedCloseDate == nil || deal.ExpectedCloseDate.IsZero() {
			continue
		}

		share, hit := monthlyShare(deal.WeightedValue, deal.Duration(),
			utils.MonthStart(*deal.ExpectedCloseDate), month.MonthStart)
		if !hit {
			continue
		}

		total += share
		month.Transactions = append(month.Transactions, &domain.Transaction{
			ID:               deal.ID,
			Type:             domain.TransactionTypeWeightedSales,
			Date:             *deal.ExpectedCloseDate,
			Amount:           share,
			CounterpartyName: deal.CounterpartyName,
			Description:      deal.Title,
		})
	}

	return total
}

// monthlyShare returns the rounded per-month slice of value when target falls
// within [start, start+duration) in calendar months
func monthlyShare(value float64, durationMonths int, start, target time.Time) (float64, bool) {
	for offset := 0; offset < durationMonths; offset++ {
		if utils.SameMonth(utils.AddMonths(start, offset), target) {
			return utils.RoundCurrency(value / float64(durationMonths)), true
		}
	}
	return 0, false
}

func signedLineAmount(ctx context.Context, entry *domain.JournalEntry, line *domain.JournalLine) float64 {
	switch line.PostingType {
	case domain.PostingTypeCredit:
		return line.Amount
	case domain.PostingTypeDebit:
		return -line.Amount
	default:
		log.L.WithContext(ctx).WithFields(log.Fields{
			"journal_entry_id": entry.ID,
			"line_id":          line.ID,
		}).Warn("journal line has no posting type, assuming Credit")
		return line.Amount
	}
}

// isRevenueLine reports whether a journal line posts to a direct revenue
// account: account code starting with 4, or a name mentioning revenue or
// income, excluding unearned and deferred accounts
func isRevenueLine(line *domain.JournalLine) bool {
	name := strings.ToLower(line.AccountName)
	if strings.Contains(name, "unearned") || strings.Contains(name, "deferred") {
		return false
	}

	if strings.HasPrefix(line.AccountNumber, "4") {
		return true
	}

	return strings.Contains(name, "revenue") || strings.Contains(name, "income")
}

func isRecurringTagged(values ...string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), "monthly") {
			return true
		}
	}
	return false
}
