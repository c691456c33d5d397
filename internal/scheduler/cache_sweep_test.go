package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/buckii/bi-forecast-sub000/infrastructure/repository/mocks"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func sweepConfig(enabled bool) *config.Config {
	return &config.Config{
		CacheSweep: config.CacheSweep{
			CronSchedule: "0 3 * * *",
			MaxAgeDays:   14,
			Enabled:      enabled,
		},
	}
}

func TestCacheSweepService_RunSweepDeletesByConfiguredAge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	cacheRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), 14).
		Return(int64(5), nil)

	service := NewCacheSweepService(sweepConfig(true), cacheRepo)
	service.runSweep(context.Background())
}

func TestCacheSweepService_RunNowRejectsOverlappingSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)
	cacheRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), 14).
		DoAndReturn(func(context.Context, int) (int64, error) {
			close(started)
			<-release
			return 0, nil
		})

	service := NewCacheSweepService(sweepConfig(true), cacheRepo)

	assert.True(t, service.RunNow(context.Background()))
	<-started

	// A second trigger while the first sweep holds the guard is refused
	assert.False(t, service.RunNow(context.Background()))
	close(release)

	// Wait for the guard to clear so ctrl.Finish sees the completed call
	assert.Eventually(t, func() bool {
		service.sweepMutex.Lock()
		defer service.sweepMutex.Unlock()
		return !service.sweepRunning
	}, time.Second, 5*time.Millisecond)
}

func TestCacheSweepService_StartDisabledSchedulesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cacheRepo := mocks.NewMockTransactionCacheRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewCacheSweepService(sweepConfig(false), cacheRepo)
	assert.NoError(t, service.Start(ctx))
}
