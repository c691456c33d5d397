package forecasting

import (
	"context"
	"errors"
	"testing"
	"time"

	pdmocks "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive/mocks"
	qbmocks "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/mocks"
	"github.com/buckii/bi-forecast-sub000/infrastructure/repository/mocks"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*service, *qbmocks.MockQuickBooksIntegrator, *pdmocks.MockPipedriveIntegrator, *mocks.MockArchiveSnapshotRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accounting := qbmocks.NewMockQuickBooksIntegrator(ctrl)
	crm := pdmocks.NewMockPipedriveIntegrator(ctrl)
	archiveRepo := mocks.NewMockArchiveSnapshotRepository(ctrl)

	svc := &service{
		cfg:         detailConfig(),
		accounting:  accounting,
		crm:         crm,
		calculator:  NewCalculatorAt(fixedNow),
		archiveRepo: archiveRepo,
		now:         fixedNow,
	}

	return svc, accounting, crm, archiveRepo
}

func expectEmptyCRM(crm *pdmocks.MockPipedriveIntegrator) {
	crm.EXPECT().FetchWonUnscheduledDeals(gomock.Any(), "comp-1").Return(nil, nil)
	crm.EXPECT().FetchOpenDeals(gomock.Any(), "comp-1").Return(nil, nil)
}

func TestService_GetForecast_LiveWindow(t *testing.T) {
	svc, accounting, crm, _ := newTestService(t)

	// Window is Jan..Jun 2024; the fetch reaches one month earlier for the
	// recurring baseline and one month past the window end
	fetchStart := date(2023, time.December, 1)
	fetchEnd := date(2024, time.July, 1)

	accounting.EXPECT().
		FetchInvoices(gomock.Any(), "comp-1", fetchStart, fetchEnd).
		Return([]*domain.Invoice{
			{ID: "inv-1", TxnDate: date(2024, time.March, 15), TotalAmount: 1000},
		}, nil)
	accounting.EXPECT().
		FetchJournalEntries(gomock.Any(), "comp-1", fetchStart, fetchEnd).
		Return(nil, nil)
	accounting.EXPECT().
		FetchDelayedCharges(gomock.Any(), "comp-1", fetchStart, fetchEnd).
		Return(nil, nil)
	expectEmptyCRM(crm)

	forecast, err := svc.GetForecast(context.Background(), "comp-1", nil)

	require.NoError(t, err)
	assert.False(t, forecast.FromArchive)
	assert.Empty(t, forecast.DataSourceErrors)
	require.Len(t, forecast.Months, 6)

	assert.Equal(t, date(2024, time.January, 1), forecast.Months[0].MonthStart)
	assert.Equal(t, date(2024, time.June, 1), forecast.Months[5].MonthStart)
	assert.Equal(t, 1000.0, forecast.Months[2].Components.Invoiced)
}

func TestService_GetForecast_OldWonDealStillContributes(t *testing.T) {
	svc, accounting, crm, _ := newTestService(t)

	accounting.EXPECT().
		FetchInvoices(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)
	accounting.EXPECT().
		FetchJournalEntries(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)
	accounting.EXPECT().
		FetchDelayedCharges(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	// Won ten months before the clock, spanning twelve months, so the deal
	// still owes shares to Jan..Apr 2024
	crm.EXPECT().
		FetchWonUnscheduledDeals(gomock.Any(), "comp-1").
		Return([]*domain.Deal{
			{ID: "deal-old", Value: 12000, DurationMonths: 12, WonDate: timePtr(date(2023, time.May, 15))},
		}, nil)
	crm.EXPECT().FetchOpenDeals(gomock.Any(), "comp-1").Return(nil, nil)

	forecast, err := svc.GetForecast(context.Background(), "comp-1", nil)

	require.NoError(t, err)
	require.Len(t, forecast.Months, 6)

	for offset := 0; offset < 4; offset++ {
		assert.Equal(t, 1000.0, forecast.Months[offset].Components.WonUnscheduled, "month offset %d", offset)
	}
	assert.Equal(t, 0.0, forecast.Months[4].Components.WonUnscheduled)
	assert.Equal(t, 0.0, forecast.Months[5].Components.WonUnscheduled)
}

func TestService_FetchDataset_SourceErrorDegradesToEmpty(t *testing.T) {
	svc, accounting, crm, _ := newTestService(t)

	start := date(2024, time.January, 1)
	end := date(2024, time.June, 1)

	accounting.EXPECT().
		FetchInvoices(gomock.Any(), "comp-1", start, end).
		Return(nil, domain.NewSourceError("quickbooks.invoices", errors.New("rate limited")))
	accounting.EXPECT().
		FetchJournalEntries(gomock.Any(), "comp-1", start, end).
		Return([]*domain.JournalEntry{{ID: "je-1", TxnDate: date(2024, time.February, 1)}}, nil)
	accounting.EXPECT().
		FetchDelayedCharges(gomock.Any(), "comp-1", start, end).
		Return(nil, nil)
	expectEmptyCRM(crm)

	data, sourceErrors, err := svc.FetchDataset(context.Background(), "comp-1", start, end)

	require.NoError(t, err)
	assert.Empty(t, data.Invoices)
	assert.Len(t, data.JournalEntries, 1)

	require.Len(t, sourceErrors, 1)
	assert.Equal(t, "quickbooks.invoices", sourceErrors[0].Source)
}

func TestService_FetchDataset_NotConnectedIsFatal(t *testing.T) {
	svc, accounting, crm, _ := newTestService(t)

	start := date(2024, time.January, 1)
	end := date(2024, time.June, 1)

	accounting.EXPECT().FetchInvoices(gomock.Any(), "comp-1", start, end).Return(nil, nil)
	accounting.EXPECT().FetchJournalEntries(gomock.Any(), "comp-1", start, end).Return(nil, nil)
	accounting.EXPECT().FetchDelayedCharges(gomock.Any(), "comp-1", start, end).Return(nil, nil)

	crm.EXPECT().
		FetchWonUnscheduledDeals(gomock.Any(), "comp-1").
		Return(nil, domain.ErrNotConnected)
	crm.EXPECT().FetchOpenDeals(gomock.Any(), "comp-1").Return(nil, nil)

	data, sourceErrors, err := svc.FetchDataset(context.Background(), "comp-1", start, end)

	require.ErrorIs(t, err, domain.ErrNotConnected)
	assert.Nil(t, data)
	assert.Nil(t, sourceErrors)
}

func TestService_GetForecast_AsOfServedFromArchive(t *testing.T) {
	svc, _, _, archiveRepo := newTestService(t)

	asOf := date(2024, time.February, 20)
	snapshotDate := date(2024, time.February, 18)

	snapshot := &domain.ArchiveSnapshot{
		CompanyID:   "comp-1",
		ArchiveDate: snapshotDate,
		Months: []*domain.RevenueMonth{
			{CompanyID: "comp-1", MonthStart: date(2024, time.January, 1)},
		},
	}

	archiveRepo.EXPECT().
		FindAsOf(gomock.Any(), "comp-1", asOf).
		Return(snapshot, nil)

	forecast, err := svc.GetForecast(context.Background(), "comp-1", &asOf)

	require.NoError(t, err)
	assert.True(t, forecast.FromArchive)
	require.NotNil(t, forecast.AsOf)
	assert.Equal(t, snapshotDate, *forecast.AsOf)
	assert.Equal(t, snapshot.Months, forecast.Months)
}

func TestService_GetForecast_AsOfRecomputesTruncated(t *testing.T) {
	svc, accounting, crm, archiveRepo := newTestService(t)

	asOf := date(2024, time.March, 10)

	archiveRepo.EXPECT().
		FindAsOf(gomock.Any(), "comp-1", asOf).
		Return(nil, nil)

	accounting.EXPECT().
		FetchInvoices(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return([]*domain.Invoice{
			{ID: "inv-before", TxnDate: date(2024, time.March, 5), TotalAmount: 1000},
			{ID: "inv-after", TxnDate: date(2024, time.March, 20), TotalAmount: 500},
		}, nil)
	accounting.EXPECT().
		FetchJournalEntries(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)
	accounting.EXPECT().
		FetchDelayedCharges(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	crm.EXPECT().
		FetchWonUnscheduledDeals(gomock.Any(), "comp-1").
		Return([]*domain.Deal{
			{ID: "deal-later", Value: 9000, DurationMonths: 3, WonDate: timePtr(date(2024, time.April, 1))},
		}, nil)
	crm.EXPECT().FetchOpenDeals(gomock.Any(), "comp-1").Return(nil, nil)

	forecast, err := svc.GetForecast(context.Background(), "comp-1", &asOf)

	require.NoError(t, err)
	assert.False(t, forecast.FromArchive)
	require.NotNil(t, forecast.AsOf)
	assert.Equal(t, asOf, *forecast.AsOf)

	require.Len(t, forecast.Months, 6)
	march := forecast.Months[2]
	assert.Equal(t, date(2024, time.March, 1), march.MonthStart)

	// The invoice dated after the as-of day and the deal won after it are
	// both invisible to the recomputation
	assert.Equal(t, 1000.0, march.Components.Invoiced)
	assert.Equal(t, 0.0, march.Components.WonUnscheduled)
}
