package exceptions

import (
	"context"
	"errors"
	"testing"
	"time"

	pdmocks "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/pipedrive/mocks"
	qbmocks "github.com/buckii/bi-forecast-sub000/infrastructure/integrator/quickbooks/mocks"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
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

func newTestFinder(t *testing.T) (*finder, *qbmocks.MockQuickBooksIntegrator, *pdmocks.MockPipedriveIntegrator) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accounting := qbmocks.NewMockQuickBooksIntegrator(ctrl)
	crm := pdmocks.NewMockPipedriveIntegrator(ctrl)

	return &finder{accounting: accounting, crm: crm, now: fixedNow}, accounting, crm
}

func TestFinder_FindOverdueDeals(t *testing.T) {
	f, _, crm := newTestFinder(t)

	crm.EXPECT().
		FetchOpenDeals(gomock.Any(), "comp-1").
		Return([]*domain.Deal{
			{ID: "deal-overdue", ExpectedCloseDate: timePtr(date(2024, time.February, 29))},
			{ID: "deal-today", ExpectedCloseDate: timePtr(date(2024, time.March, 10))},
			{ID: "deal-future", ExpectedCloseDate: timePtr(date(2024, time.April, 1))},
			{ID: "deal-no-close"},
		}, nil)

	overdue, err := f.FindOverdueDeals(context.Background(), "comp-1")

	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "deal-overdue", overdue[0].Deal.ID)
	assert.Equal(t, 10, overdue[0].DaysOverdue)
}

func TestFinder_FindStaleDelayedCharges(t *testing.T) {
	f, accounting, _ := newTestFinder(t)

	accounting.EXPECT().
		FetchDelayedCharges(gomock.Any(), "comp-1", date(2023, time.September, 1), date(2024, time.March, 10)).
		Return([]*domain.DelayedCharge{
			{ID: "charge-stale", TxnDate: date(2024, time.January, 15)},
			{ID: "charge-recent", TxnDate: date(2024, time.February, 20)},
			{ID: "charge-billed", TxnDate: date(2023, time.December, 1), Billed: true},
		}, nil)

	stale, err := f.FindStaleDelayedCharges(context.Background(), "comp-1")

	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "charge-stale", stale[0].Charge.ID)
	assert.Equal(t, 55, stale[0].AgeDays)
}

func TestFinder_FindWonUnscheduled(t *testing.T) {
	f, _, crm := newTestFinder(t)

	// The six-month window starts Sep 1 2023; older wins and undated wins
	// are presumed handled
	crm.EXPECT().
		FetchWonUnscheduledDeals(gomock.Any(), "comp-1").
		Return([]*domain.Deal{
			{ID: "deal-recent", WonDate: timePtr(date(2024, time.January, 5))},
			{ID: "deal-boundary", WonDate: timePtr(date(2023, time.September, 1))},
			{ID: "deal-old", WonDate: timePtr(date(2023, time.August, 31))},
			{ID: "deal-undated"},
		}, nil)

	found, err := f.FindWonUnscheduled(context.Background(), "comp-1")

	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "deal-recent", found[0].ID)
	assert.Equal(t, "deal-boundary", found[1].ID)
}

func TestFinder_FindAll_CategoryFailureYieldsEmptyList(t *testing.T) {
	f, accounting, crm := newTestFinder(t)

	crm.EXPECT().
		FetchOpenDeals(gomock.Any(), "comp-1").
		Return(nil, errors.New("pipedrive down"))
	accounting.EXPECT().
		FetchDelayedCharges(gomock.Any(), "comp-1", gomock.Any(), gomock.Any()).
		Return([]*domain.DelayedCharge{
			{ID: "charge-stale", TxnDate: date(2024, time.January, 15)},
		}, nil)
	crm.EXPECT().
		FetchWonUnscheduledDeals(gomock.Any(), "comp-1").
		Return([]*domain.Deal{
			{ID: "deal-1", WonDate: timePtr(date(2024, time.February, 1))},
		}, nil)

	report, err := f.FindAll(context.Background(), "comp-1")

	require.NoError(t, err)
	assert.Empty(t, report.OverdueDeals)
	assert.Len(t, report.StaleDelayedCharges, 1)
	assert.Len(t, report.WonUnscheduled, 1)
}
