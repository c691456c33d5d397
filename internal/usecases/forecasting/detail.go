package forecasting

import (
	"context"
	"time"

	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
	"github.com/buckii/bi-forecast-sub000/pkg/utils"
)

// DetailService answers per-month transaction-detail requests through the
// cache. The cache is an optimization only: a miss or stale hit triggers a
// recompute that produces the exact values a cold computation would.
type DetailService interface {
	GetMonthDetail(ctx context.Context, companyID string, month, asOfDate time.Time) (*domain.CacheEntry, error)
	GetRangeDetail(ctx context.Context, companyID string, start, end, asOfDate time.Time) (*domain.CacheEntry, error)
	Prefetch(ctx context.Context, companyID string, asOfDate time.Time) error
}

type detailService struct {
	cfg       *config.Config
	forecast  Service
	cacheRepo repository.TransactionCacheRepository
	now       func() time.Time
}

func NewDetailService(
	cfg *config.Config,
	forecast Service,
	cacheRepo repository.TransactionCacheRepository,
) DetailService {
	return &detailService{
		cfg:       cfg,
		forecast:  forecast,
		cacheRepo: cacheRepo,
		now:       time.Now,
	}
}

// GetMonthDetail returns one month's component transactions and per-client
// breakdown, recomputing on a cache miss. Single-month entries are never
// read-stale; the background sweep evicts old ones.
func (s *detailService) GetMonthDetail(ctx context.Context, companyID string, month, asOfDate time.Time) (*domain.CacheEntry, error) {
	monthStart := utils.MonthStart(month)
	monthKey := domain.SingleMonthKey(monthStart)
	asOfDay := utils.DayStart(asOfDate)

	cached, err := s.cacheRepo.Get(ctx, companyID, monthKey, asOfDay)
	if err != nil {
		return nil, err
	}

	if cached != nil {
		return cached, nil
	}

	return s.computeAndStore(ctx, companyID, monthKey, monthStart, 1, asOfDay)
}

// GetRangeDetail returns the combined detail for [start, end] months under a
// composite range key. Range entries expire after the configured number of
// hours and are recomputed on read.
func (s *detailService) GetRangeDetail(ctx context.Context, companyID string, start, end, asOfDate time.Time) (*domain.CacheEntry, error) {
	rangeStart := utils.MonthStart(start)
	rangeEnd := utils.MonthStart(end)
	monthKey := domain.RangeMonthKey(rangeStart, rangeEnd)
	asOfDay := utils.DayStart(asOfDate)

	cached, err := s.cacheRepo.Get(ctx, companyID, monthKey, asOfDay)
	if err != nil {
		return nil, err
	}

	if cached != nil && !s.rangeEntryStale(cached) {
		return cached, nil
	}

	monthCount := monthsBetween(rangeStart, rangeEnd) + 1

	return s.computeAndStore(ctx, companyID, monthKey, rangeStart, monthCount, asOfDay)
}

// Prefetch warms the cache for the standard dashboard window: two months
// back, the current month, and three forward. Months are processed one at a
// time so the accounting client's rate gate spaces the upstream calls.
func (s *detailService) Prefetch(ctx context.Context, companyID string, asOfDate time.Time) error {
	asOfDay := utils.DayStart(asOfDate)
	currentMonth := utils.MonthStart(asOfDay)

	for offset := -s.cfg.Forecast.MonthsBack; offset <= s.cfg.Forecast.MonthsForward; offset++ {
		monthStart := utils.AddMonths(currentMonth, offset)
		monthKey := domain.SingleMonthKey(monthStart)

		if _, err := s.computeAndStore(ctx, companyID, monthKey, monthStart, 1, asOfDay); err != nil {
			return err
		}
	}

	log.L.WithContext(ctx).WithFields(log.Fields{
		"company_id": companyID,
		"as_of":      asOfDay.Format("2006-01-02"),
	}).Info("transaction detail prefetch completed")

	return nil
}

func (s *detailService) computeAndStore(
	ctx context.Context,
	companyID, monthKey string,
	windowStart time.Time,
	monthCount int,
	asOfDay time.Time,
) (*domain.CacheEntry, error) {
	months, sourceErrors, err := s.forecast.ComputeMonths(ctx, companyID, windowStart, monthCount)
	if err != nil {
		return nil, err
	}

	for _, sourceErr := range sourceErrors {
		log.L.WithContext(ctx).WithFields(log.Fields{
			"company_id": companyID,
			"month_key":  monthKey,
			"source":     sourceErr.Source,
		}).Warn("detail computed with a source missing")
	}

	entry := &domain.CacheEntry{
		CompanyID:    companyID,
		MonthKey:     monthKey,
		AsOfDate:     asOfDay,
		Transactions: make(map[string][]*domain.Transaction),
		Clients:      make(map[string]*domain.ClientRevenue),
	}

	for _, month := range months {
		for component, txns := range TransactionsByComponent(month) {
			entry.Transactions[component] = append(entry.Transactions[component], txns...)
		}

		for name, client := range GroupByClient(month) {
			existing, ok := entry.Clients[name]
			if !ok {
				entry.Clients[name] = client
				continue
			}
			addComponents(&existing.Components, client.Components)
		}
	}

	if err := s.cacheRepo.Put(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *detailService) rangeEntryStale(entry *domain.CacheEntry) bool {
	if !domain.IsRangeKey(entry.MonthKey) {
		return false
	}

	maxAge := time.Duration(s.cfg.Forecast.RangeCacheHours) * time.Hour

	return s.now().Sub(entry.UpdatedAt) > maxAge
}

func addComponents(into *domain.Components, from domain.Components) {
	into.Invoiced += from.Invoiced
	into.JournalEntries += from.JournalEntries
	into.DelayedCharges += from.DelayedCharges
	into.MonthlyRecurring += from.MonthlyRecurring
	into.WonUnscheduled += from.WonUnscheduled
	into.WeightedSales += from.WeightedSales
}

func monthsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	total := years*12 + months
	if total < 0 {
		return 0
	}
	return total
}
