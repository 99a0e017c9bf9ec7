package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultRefreshInterval = 24 * time.Hour
	syncJobName            = "cbr-rates-sync"
)

type SyncRunner interface {
	Sync(ctx context.Context, execID string) error
}

// Scheduler re-runs the feed sync on a fixed interval after the startup sync.
type Scheduler struct {
	syncer          SyncRunner
	refreshInterval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

// Start registers the sync job and returns; the first scheduled run is one interval away.
// The scheduler stops on its own once ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	// a run still in progress when the next tick comes delays that tick
	_, err = sched.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(s.runSync),
		gocron.WithName(syncJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = sched
	s.mu.Unlock()
	sched.Start()
	logrus.Infof("Rates sync scheduled every %s", s.refreshInterval)

	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// runSync receives the job context from gocron; it is canceled on scheduler shutdown.
func (s *Scheduler) runSync(jobCtx context.Context) {
	execID := uuid.NewString()
	if err := s.syncer.Sync(jobCtx, execID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"job": syncJobName, "exec_id": execID}).Error("Scheduled rates sync failed")
	}
}

// Shutdown is safe to call more than once.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(syncer SyncRunner, refreshInterval time.Duration) *Scheduler {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return &Scheduler{syncer: syncer, refreshInterval: refreshInterval}
}
