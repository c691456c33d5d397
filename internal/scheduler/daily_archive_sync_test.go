package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/domain"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/archiving"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubArchiver lets the tests control how long ArchiveAll blocks and what it
// reports, without pulling in the full archiving dependencies.
type stubArchiver struct {
	mu      sync.Mutex
	calls   int
	results []archiving.CompanyResult
	block   chan struct{}
}

func (s *stubArchiver) ArchiveAll(ctx context.Context) []archiving.CompanyResult {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.block != nil {
		<-s.block
	}
	return s.results
}

func (s *stubArchiver) ArchiveCompany(ctx context.Context, settings *domain.CompanySettings) error {
	return nil
}

func (s *stubArchiver) BuildSnapshot(ctx context.Context, companyID string) (*domain.ArchiveSnapshot, error) {
	return nil, errors.New("not implemented")
}

func (s *stubArchiver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func syncConfig(enabled bool) *config.Config {
	return &config.Config{
		ArchiveSync: config.ArchiveSync{
			CronSchedule:      "0 2 * * *",
			MaxConcurrentJobs: 2,
			Enabled:           enabled,
		},
	}
}

func TestArchiveSyncService_RunRecordsFailureCount(t *testing.T) {
	archiver := &stubArchiver{
		results: []archiving.CompanyResult{
			{CompanyID: "comp-1"},
			{CompanyID: "comp-2", Err: errors.New("upstream exploded"), Error: "upstream exploded"},
			{CompanyID: "comp-3"},
		},
	}

	service := NewArchiveSyncService(syncConfig(true), archiver)
	service.runArchiveSync(context.Background())

	status := service.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 1, status.LastFailures)
	require.NotNil(t, status.LastStartedAt)
	require.NotNil(t, status.LastCompletedAt)
	assert.False(t, status.LastCompletedAt.Before(*status.LastStartedAt))
}

func TestArchiveSyncService_RunNowRejectsOverlappingRun(t *testing.T) {
	archiver := &stubArchiver{block: make(chan struct{})}

	service := NewArchiveSyncService(syncConfig(true), archiver)

	require.True(t, service.RunNow(context.Background()))
	assert.Eventually(t, func() bool {
		return service.Status().Running
	}, time.Second, 5*time.Millisecond)

	assert.False(t, service.RunNow(context.Background()))

	close(archiver.block)
	assert.Eventually(t, func() bool {
		return !service.Status().Running
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, archiver.callCount())
}

func TestArchiveSyncService_StartDisabledSchedulesNothing(t *testing.T) {
	archiver := &stubArchiver{}

	service := NewArchiveSyncService(syncConfig(false), archiver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, service.Start(ctx))
	assert.Equal(t, 0, archiver.callCount())
}

func TestArchiveSyncService_StatusBeforeAnyRunIsEmpty(t *testing.T) {
	service := NewArchiveSyncService(syncConfig(true), &stubArchiver{})

	status := service.Status()
	assert.False(t, status.Running)
	assert.Nil(t, status.LastStartedAt)
	assert.Nil(t, status.LastCompletedAt)
	assert.Zero(t, status.LastFailures)
}
