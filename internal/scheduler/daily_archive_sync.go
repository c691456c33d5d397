package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/internal/usecases/archiving"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
)

// ArchiveSyncStatus is the snapshot of the job's recent activity exposed by
// the cron status endpoint
type ArchiveSyncStatus struct {
	Running         bool       `json:"running"`
	LastStartedAt   *time.Time `json:"lastStartedAt,omitempty"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
	LastFailures    int        `json:"lastFailures"`
}

// ArchiveSyncService schedules the once-daily snapshot run over every
// configured company
type ArchiveSyncService struct {
	scheduler *gocron.Scheduler
	cfg       *config.Config
	archiver  archiving.Service

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastFailures        int
}

func NewArchiveSyncService(cfg *config.Config, archiver archiving.Service) *ArchiveSyncService {
	log.L.WithFields(log.Fields{
		"cron_schedule":       cfg.ArchiveSync.CronSchedule,
		"max_concurrent_jobs": cfg.ArchiveSync.MaxConcurrentJobs,
		"enabled":             cfg.ArchiveSync.Enabled,
	}).Info("archive sync scheduler configured")

	return &ArchiveSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		cfg:       cfg,
		archiver:  archiver,
	}
}

func (s *ArchiveSyncService) Start(ctx context.Context) error {
	if !s.cfg.ArchiveSync.Enabled {
		log.L.Info("archive sync disabled by configuration")
		return nil
	}

	log.L.WithField("cron", s.cfg.ArchiveSync.CronSchedule).Info("starting archive sync scheduler")

	_, err := s.scheduler.Cron(s.cfg.ArchiveSync.CronSchedule).Do(func() {
		s.runArchiveSync(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling archive sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("stopping archive sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow triggers an immediate run, used by the manual cron endpoint. It
// reports whether a run was started.
func (s *ArchiveSyncService) RunNow(ctx context.Context) bool {
	s.syncMutex.Lock()
	alreadyRunning := s.syncRunning
	s.syncMutex.Unlock()

	if alreadyRunning {
		return false
	}

	go s.runArchiveSync(ctx)
	return true
}

// Status reports the job's recent activity
func (s *ArchiveSyncService) Status() ArchiveSyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := ArchiveSyncStatus{
		Running:      s.syncRunning,
		LastFailures: s.lastFailures,
	}

	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastStartedAt = &startedAt
	}

	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastCompletedAt = &completedAt
	}

	return status
}

func (s *ArchiveSyncService) runArchiveSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("archive sync already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	ctx, correlationID := log.WithCorrelationID(ctx)
	startTime := time.Now()

	log.L.WithField("correlation_id", correlationID).Info("starting daily archive sync")

	results := s.archiver.ArchiveAll(ctx)

	succeeded, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}

	s.syncMutex.Lock()
	s.lastFailures = failed
	s.syncMutex.Unlock()

	log.L.WithFields(log.Fields{
		"correlation_id": correlationID,
		"companies":      len(results),
		"succeeded":      succeeded,
		"failed":         failed,
		"duration":       time.Since(startTime).String(),
	}).Info("daily archive sync finished")
}
