package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/hippique/internal/export"
	"github.com/yourusername/hippique/internal/models"
)

// ExportRunner exports ranked tables.
type ExportRunner interface {
	ExportAll(ctx context.Context, categories []models.Category) (*export.RunResult, error)
}

// Refresher drops cached tables so the next export reads fresh data.
type Refresher interface {
	Invalidate()
}

// Scheduler runs ranking exports on a cron schedule
type Scheduler struct {
	cron            *cron.Cron
	exporter        ExportRunner
	refresher       Refresher
	categories      []models.Category
	logger          logrus.FieldLogger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. refresher may be nil.
func NewScheduler(exporter ExportRunner, refresher Refresher, categories []models.Category, logger logrus.FieldLogger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		exporter:        exporter,
		refresher:       refresher,
		categories:      categories,
		logger:          logger.WithField("component", "scheduler"),
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      10 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleExport schedules a full export with a standard cron expression
func (s *Scheduler) ScheduleExport(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		_, _ = s.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("schedule", cronExpression).Info("Scheduled ranking export")

	return nil
}

// RunNow refreshes the tables and exports every configured category.
func (s *Scheduler) RunNow(ctx context.Context) (*export.RunResult, error) {
	if s.refresher != nil {
		s.refresher.Invalidate()
	}

	result, err := s.exporter.ExportAll(ctx, s.categories)
	fields := logrus.Fields{"categories": len(s.categories)}
	if result != nil {
		fields["run_id"] = result.RunID.String()
		fields["written"] = len(result.Files)
		fields["failed"] = len(result.Failed)
	}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("Ranking export completed with errors")
	} else {
		s.logger.WithFields(fields).Info("Ranking export completed")
	}
	return result, err
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for a running export to finish, up to the graceful timeout.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler did not stop within %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Check reports an error while the scheduler is stopped. It lets the health
// server use the scheduler as a readiness check.
func (s *Scheduler) Check(_ context.Context) error {
	if !s.IsRunning() {
		return fmt.Errorf("scheduler is not running")
	}
	return nil
}
