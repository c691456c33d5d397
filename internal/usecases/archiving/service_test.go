package archiving

import (
	"context"
	"errors"
	"testing"
	"time"

	qbmocks "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/mocks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository/mocks"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	exceptionsmocks "github.com/buckii/bi-forecast-sub000/internal/usecases/exceptions/mocks"
	forecastingmocks "github.com/buckii/bi-forecast-sub000/internal/usecases/forecasting/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func fixedNow() time.Time {
	return date(2024, time.March, 10)
}

type testMocks struct {
	forecast     *forecastingmocks.MockService
	finder       *exceptionsmocks.MockFinder
	accounting   *qbmocks.MockQuickBooksIntegrator
	archiveRepo  *mocks.MockArchiveSnapshotRepository
	settingsRepo *mocks.MockCompanySettingsRepository
}

func newTestService(t *testing.T) (*service, *testMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &testMocks{
		forecast:     forecastingmocks.NewMockService(ctrl),
		finder:       exceptionsmocks.NewMockFinder(ctrl),
		accounting:   qbmocks.NewMockQuickBooksIntegrator(ctrl),
		archiveRepo:  mocks.NewMockArchiveSnapshotRepository(ctrl),
		settingsRepo: mocks.NewMockCompanySettingsRepository(ctrl),
	}

	svc := &service{
		cfg: &config.Config{
			Forecast:    config.Forecast{MonthsBack: 2, MonthsForward: 3},
			ArchiveSync: config.ArchiveSync{MaxConcurrentJobs: 2},
		},
		forecast:     m.forecast,
		finder:       m.finder,
		accounting:   m.accounting,
		archiveRepo:  m.archiveRepo,
		settingsRepo: m.settingsRepo,
		now:          fixedNow,
	}

	return svc, m
}

func expectSnapshotComputation(m *testMocks, companyID string) {
	months := []*domain.RevenueMonth{
		{CompanyID: companyID, MonthStart: date(2024, time.January, 1)},
	}

	m.forecast.EXPECT().
		ComputeMonths(gomock.Any(), companyID, date(2024, time.January, 1), 6).
		Return(months, nil, nil)
	m.finder.EXPECT().
		FindAll(gomock.Any(), companyID).
		Return(&domain.ExceptionsReport{}, nil)
	m.accounting.EXPECT().
		FetchAccounts(gomock.Any(), companyID, gomock.Any()).
		Return(nil, nil)
	m.accounting.EXPECT().
		FetchInvoices(gomock.Any(), companyID, gomock.Any(), gomock.Any()).
		Return(nil, nil)
}

func TestService_BuildSnapshot(t *testing.T) {
	svc, m := newTestService(t)

	months := []*domain.RevenueMonth{
		{CompanyID: "comp-1", MonthStart: date(2024, time.January, 1)},
	}
	report := &domain.ExceptionsReport{
		WonUnscheduled: []*domain.Deal{{ID: "deal-1"}},
	}

	m.forecast.EXPECT().
		ComputeMonths(gomock.Any(), "comp-1", date(2024, time.January, 1), 6).
		Return(months, nil, nil)
	m.finder.EXPECT().FindAll(gomock.Any(), "comp-1").Return(report, nil)
	m.accounting.EXPECT().
		FetchAccounts(gomock.Any(), "comp-1", gomock.Any()).
		Return([]*domain.Account{
			{ID: "acc-1", Classification: "Asset", CurrentBalance: 5000},
			{ID: "acc-2", Classification: "Liability", CurrentBalance: 2000},
		}, nil)
	m.accounting.EXPECT().
		FetchInvoices(gomock.Any(), "comp-1", date(2023, time.March, 1), date(2024, time.March, 10)).
		Return([]*domain.Invoice{
			{ID: "inv-current", TxnDate: date(2024, time.March, 1), DueDate: timePtr(date(2024, time.March, 31)), Balance: 1000},
			{ID: "inv-30", TxnDate: date(2024, time.February, 1), DueDate: timePtr(date(2024, time.February, 20)), Balance: 400},
			{ID: "inv-90plus", TxnDate: date(2023, time.November, 1), DueDate: timePtr(date(2023, time.November, 15)), Balance: 250},
			{ID: "inv-paid", TxnDate: date(2024, time.February, 1), Balance: 0},
		}, nil)

	snapshot, err := svc.BuildSnapshot(context.Background(), "comp-1")

	require.NoError(t, err)
	assert.Equal(t, "comp-1", snapshot.CompanyID)
	assert.Equal(t, months, snapshot.Months)
	assert.Equal(t, report, snapshot.Exceptions)

	require.NotNil(t, snapshot.Balances)
	assert.Len(t, snapshot.Balances.AssetAccounts, 1)
	assert.Len(t, snapshot.Balances.LiabilityAccounts, 1)

	aged := snapshot.Balances.AgedReceivables
	assert.Equal(t, 1000.0, aged.Current)
	assert.Equal(t, 400.0, aged.Days1To30)
	assert.Equal(t, 250.0, aged.Over90Days)
	assert.Equal(t, 1650.0, aged.TotalDue)
}

func TestService_BuildSnapshot_BalancesFailureIsNotFatal(t *testing.T) {
	svc, m := newTestService(t)

	m.forecast.EXPECT().
		ComputeMonths(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return([]*domain.RevenueMonth{}, nil, nil)
	m.finder.EXPECT().FindAll(gomock.Any(), "comp-1").Return(&domain.ExceptionsReport{}, nil)
	m.accounting.EXPECT().
		FetchAccounts(gomock.Any(), "comp-1", gomock.Any()).
		Return(nil, errors.New("accounts unavailable"))

	snapshot, err := svc.BuildSnapshot(context.Background(), "comp-1")

	require.NoError(t, err)
	require.NotNil(t, snapshot.Balances)
	assert.Empty(t, snapshot.Balances.AssetAccounts)
	assert.Equal(t, domain.AgedReceivables{}, snapshot.Balances.AgedReceivables)
}

func TestService_BuildSnapshot_ForecastFailureIsFatal(t *testing.T) {
	svc, m := newTestService(t)

	m.forecast.EXPECT().
		ComputeMonths(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return(nil, nil, domain.ErrNotConnected)

	snapshot, err := svc.BuildSnapshot(context.Background(), "comp-1")

	require.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Nil(t, snapshot)
}

func TestService_ArchiveCompany_UpsertsAndPrunes(t *testing.T) {
	svc, m := newTestService(t)

	settings := &domain.CompanySettings{CompanyID: "comp-1", ArchiveRetentionDays: 90}

	expectSnapshotComputation(m, "comp-1")

	m.archiveRepo.EXPECT().
		UpsertToday(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *domain.ArchiveSnapshot) error {
			assert.Equal(t, "comp-1", snapshot.CompanyID)
			return nil
		})
	m.archiveRepo.EXPECT().
		Prune(gomock.Any(), "comp-1", 90).
		Return(int64(3), nil)

	err := svc.ArchiveCompany(context.Background(), settings)
	require.NoError(t, err)
}

func TestService_ArchiveCompany_DefaultRetention(t *testing.T) {
	svc, m := newTestService(t)

	settings := &domain.CompanySettings{CompanyID: "comp-1"}

	expectSnapshotComputation(m, "comp-1")
	m.archiveRepo.EXPECT().UpsertToday(gomock.Any(), gomock.Any()).Return(nil)
	m.archiveRepo.EXPECT().Prune(gomock.Any(), "comp-1", 365).Return(int64(0), nil)

	err := svc.ArchiveCompany(context.Background(), settings)
	require.NoError(t, err)
}

func TestService_ArchiveAll_IsolatesCompanyFailures(t *testing.T) {
	svc, m := newTestService(t)

	m.settingsRepo.EXPECT().
		List(gomock.Any()).
		Return([]*domain.CompanySettings{
			{CompanyID: "comp-ok"},
			{CompanyID: "comp-bad"},
		}, nil)

	expectSnapshotComputation(m, "comp-ok")
	m.archiveRepo.EXPECT().UpsertToday(gomock.Any(), gomock.Any()).Return(nil)
	m.archiveRepo.EXPECT().Prune(gomock.Any(), "comp-ok", 365).Return(int64(0), nil)

	m.forecast.EXPECT().
		ComputeMonths(gomock.Any(), "comp-bad", gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("upstream exploded"))

	results := svc.ArchiveAll(context.Background())

	require.Len(t, results, 2)

	byCompany := map[string]CompanyResult{}
	for _, result := range results {
		byCompany[result.CompanyID] = result
	}

	assert.NoError(t, byCompany["comp-ok"].Err)
	require.Error(t, byCompany["comp-bad"].Err)
	assert.Equal(t, "upstream exploded", byCompany["comp-bad"].Error)
}
