package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/buckii/bi-forecast-sub000/infrastructure/repository"
	"github.com/buckii/bi-forecast-sub000/internal/config"
	"github.com/buckii/bi-forecast-sub000/pkg/log"
)

// CacheSweepService evicts transaction-detail cache entries older than the
// configured age. Single-month entries are never read-stale, so this sweep is
// their only eviction path.
type CacheSweepService struct {
	scheduler *gocron.Scheduler
	cfg       *config.Config
	cacheRepo repository.TransactionCacheRepository

	sweepRunning bool
	sweepMutex   sync.Mutex
}

func NewCacheSweepService(cfg *config.Config, cacheRepo repository.TransactionCacheRepository) *CacheSweepService {
	return &CacheSweepService{
		scheduler: gocron.NewScheduler(time.Local),
		cfg:       cfg,
		cacheRepo: cacheRepo,
	}
}

func (s *CacheSweepService) Start(ctx context.Context) error {
	if !s.cfg.CacheSweep.Enabled {
		log.L.Info("cache sweep disabled by configuration")
		return nil
	}

	log.L.WithFields(log.Fields{
		"cron":         s.cfg.CacheSweep.CronSchedule,
		"max_age_days": s.cfg.CacheSweep.MaxAgeDays,
	}).Info("starting cache sweep scheduler")

	_, err := s.scheduler.Cron(s.cfg.CacheSweep.CronSchedule).Do(func() {
		s.runSweep(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling cache sweep: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("stopping cache sweep scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow triggers an immediate sweep, used by the manual cron endpoint
func (s *CacheSweepService) RunNow(ctx context.Context) bool {
	s.sweepMutex.Lock()
	alreadyRunning := s.sweepRunning
	s.sweepMutex.Unlock()

	if alreadyRunning {
		return false
	}

	go s.runSweep(ctx)
	return true
}

func (s *CacheSweepService) runSweep(ctx context.Context) {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		log.L.Info("cache sweep already running, skipping")
		return
	}
	s.sweepRunning = true
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.sweepMutex.Unlock()
	}()

	deleted, err := s.cacheRepo.DeleteOlderThan(ctx, s.cfg.CacheSweep.MaxAgeDays)
	if err != nil {
		log.L.WithError(err).Error("cache sweep failed")
		return
	}

	log.L.WithFields(log.Fields{
		"deleted":      deleted,
		"max_age_days": s.cfg.CacheSweep.MaxAgeDays,
	}).Info("cache sweep finished")
}
