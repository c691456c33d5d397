package forecasting

import "github.com/buckii/bi-forecast-sub000/internal/domain"

// GroupByClient folds a computed month's transactions into per-client
// component breakdowns. Transactions without a counterparty are grouped
// under "Unassigned".
func GroupByClient(month *domain.RevenueMonth) map[string]*domain.ClientRevenue {
	clients := make(map[string]*domain.ClientRevenue)

	for _, txn := range month.Transactions {
		name := txn.CounterpartyName
		if name == "" {
			name = "Unassigned"
		}

		client, ok := clients[name]
		if !ok {
			client = &domain.ClientRevenue{Name: name}
			clients[name] = client
		}

		switch txn.Type {
		case domain.TransactionTypeInvoice:
			client.Components.Invoiced += txn.Amount
		case domain.TransactionTypeJournalEntry:
			client.Components.JournalEntries += txn.Amount
		case domain.TransactionTypeDelayedCharge:
			client.Components.DelayedCharges += txn.Amount
		case domain.TransactionTypeMonthlyRecurring:
			client.Components.MonthlyRecurring += txn.Amount
		case domain.TransactionTypeWonUnscheduled:
			client.Components.WonUnscheduled += txn.Amount
		case domain.TransactionTypeWeightedSales:
			client.Components.WeightedSales += txn.Amount
		}
	}

	return clients
}

// TransactionsByComponent buckets a month's transactions under their
// component names, the shape the detail cache stores
func TransactionsByComponent(month *domain.RevenueMonth) map[string][]*domain.Transaction {
	buckets := make(map[string][]*domain.Transaction)

	for _, txn := range month.Transactions {
		component, ok := componentForType(txn.Type)
		if !ok {
			continue
		}
		buckets[component] = append(buckets[component], txn)
	}

	return buckets
}

func componentForType(transactionType string) (string, bool) {
	switch transactionType {
	case domain.TransactionTypeInvoice:
		return domain.ComponentInvoiced, true
	case domain.TransactionTypeJournalEntry:
		return domain.ComponentJournalEntries, true
	case domain.TransactionTypeDelayedCharge:
		return domain.ComponentDelayedCharges, true
	case domain.TransactionTypeMonthlyRecurring:
		return domain.ComponentMonthlyRecurring, true
	case domain.TransactionTypeWonUnscheduled:
		return domain.ComponentWonUnscheduled, true
	case domain.TransactionTypeWeightedSales:
		return domain.ComponentWeightedSales, true
	}
	return "", false
}
