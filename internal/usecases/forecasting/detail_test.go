package forecasting

import (
	"context"
	"testing"
	"time"

	"github.com/buckii/bi-forecast-sub000/infrastructure/repository/mocks"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubForecast is an in-package Service stub; the generated mock lives in a
// package that imports this one, which tests here cannot use
type stubForecast struct {
	Service
	computed []time.Time
	months   func(windowStart time.Time, monthCount int) []*domain.RevenueMonth
	err      error
}

func (s *stubForecast) ComputeMonths(_ context.Context, companyID string, windowStart time.Time, monthCount int) ([]*domain.RevenueMonth, []domain.DataSourceError, error) {
	s.computed = append(s.computed, windowStart)
	if s.err != nil {
		return nil, nil, s.err
	}
	if s.months != nil {
		return s.months(windowStart, monthCount), nil, nil
	}

	months := make([]*domain.RevenueMonth, 0, monthCount)
	for offset := 0; offset < monthCount; offset++ {
		month := domain.NewRevenueMonth(companyID, windowStart.AddDate(0, offset, 0))
		month.Components.Invoiced = 100
		month.Transactions = []*domain.Transaction{
			{ID: "inv-1", Type: domain.TransactionTypeInvoice, Date: month.MonthStart, Amount: 100, CounterpartyName: "Acme"},
		}
		months = append(months, month)
	}
	return months, nil, nil
}

func detailConfig() *config.Config {
	return &config.Config{
		Forecast: config.Forecast{
			MonthsBack:      2,
			MonthsForward:   3,
			RangeCacheHours: 24,
		},
	}
}

func TestDetailService_GetMonthDetail_CacheHitSkipsRecompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	forecast := &stubForecast{}

	asOf := date(2024, time.March, 10)
	cached := &domain.CacheEntry{
		CompanyID: "comp-1",
		MonthKey:  "2024-03-01",
		AsOfDate:  asOf,
		Transactions: map[string][]*domain.Transaction{
			domain.ComponentInvoiced: {{ID: "inv-1", Amount: 100}},
		},
	}

	cacheRepo.EXPECT().
		Get(gomock.Any(), "comp-1", "2024-03-01", asOf).
		Return(cached, nil)

	service := &detailService{cfg: detailConfig(), forecast: forecast, cacheRepo: cacheRepo, now: fixedNow}

	entry, err := service.GetMonthDetail(context.Background(), "comp-1", date(2024, time.March, 1), asOf)

	require.NoError(t, err)
	assert.Same(t, cached, entry)
	assert.Empty(t, forecast.computed)
}

func TestDetailService_GetMonthDetail_MissRecomputesAndStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	forecast := &stubForecast{}

	asOf := date(2024, time.March, 10)

	cacheRepo.EXPECT().
		Get(gomock.Any(), "comp-1", "2024-03-01", asOf).
		Return(nil, nil)

	var stored *domain.CacheEntry
	cacheRepo.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.CacheEntry) error {
			stored = entry
			return nil
		})

	service := &detailService{cfg: detailConfig(), forecast: forecast, cacheRepo: cacheRepo, now: fixedNow}

	entry, err := service.GetMonthDetail(context.Background(), "comp-1", date(2024, time.March, 15), asOf)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Same(t, stored, entry)
	assert.Equal(t, "2024-03-01", entry.MonthKey)
	assert.Len(t, entry.Transactions[domain.ComponentInvoiced], 1)

	require.Contains(t, entry.Clients, "Acme")
	assert.Equal(t, 100.0, entry.Clients["Acme"].Components.Invoiced)

	require.Len(t, forecast.computed, 1)
	assert.Equal(t, date(2024, time.March, 1), forecast.computed[0])
}

func TestDetailService_GetRangeDetail_StaleEntryRecomputes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	forecast := &stubForecast{}

	asOf := date(2024, time.March, 10)
	rangeKey := "2024-01-01:2024-03-01"

	stale := &domain.CacheEntry{
		CompanyID: "comp-1",
		MonthKey:  rangeKey,
		UpdatedAt: fixedNow().Add(-25 * time.Hour),
	}

	cacheRepo.EXPECT().
		Get(gomock.Any(), "comp-1", rangeKey, asOf).
		Return(stale, nil)
	cacheRepo.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		Return(nil)

	service := &detailService{cfg: detailConfig(), forecast: forecast, cacheRepo: cacheRepo, now: fixedNow}

	entry, err := service.GetRangeDetail(context.Background(), "comp-1", date(2024, time.January, 1), date(2024, time.March, 1), asOf)

	require.NoError(t, err)
	assert.NotSame(t, stale, entry)

	// Three months computed from the range start
	require.Len(t, forecast.computed, 1)
	assert.Len(t, entry.Transactions[domain.ComponentInvoiced], 3)
	assert.Equal(t, 300.0, entry.Clients["Acme"].Components.Invoiced)
}

func TestDetailService_GetRangeDetail_FreshEntryServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	forecast := &stubForecast{}

	asOf := date(2024, time.March, 10)
	rangeKey := "2024-01-01:2024-03-01"

	fresh := &domain.CacheEntry{
		CompanyID: "comp-1",
		MonthKey:  rangeKey,
		UpdatedAt: fixedNow().Add(-1 * time.Hour),
	}

	cacheRepo.EXPECT().
		Get(gomock.Any(), "comp-1", rangeKey, asOf).
		Return(fresh, nil)

	service := &detailService{cfg: detailConfig(), forecast: forecast, cacheRepo: cacheRepo, now: fixedNow}

	entry, err := service.GetRangeDetail(context.Background(), "comp-1", date(2024, time.January, 1), date(2024, time.March, 1), asOf)

	require.NoError(t, err)
	assert.Same(t, fresh, entry)
	assert.Empty(t, forecast.computed)
}

func TestDetailService_Prefetch_WarmsTheDashboardWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	forecast := &stubForecast{}

	cacheRepo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(6)

	service := &detailService{cfg: detailConfig(), forecast: forecast, cacheRepo: cacheRepo, now: fixedNow}

	err := service.Prefetch(context.Background(), "comp-1", date(2024, time.March, 10))
	require.NoError(t, err)

	// Two back, current, three forward, in order
	expected := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
		date(2024, time.April, 1),
		date(2024, time.May, 1),
		date(2024, time.June, 1),
	}
	assert.Equal(t, expected, forecast.computed)
}
