package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/tasks"
)

// Enqueuer saves tasks to the background queue.
type Enqueuer interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
}

// ViewMarkerPurgeScheduler periodically enqueues a purge of expired view
// markers. The purge itself runs on the task queue.
type ViewMarkerPurgeScheduler struct {
	queue    Enqueuer
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewViewMarkerPurgeScheduler creates a scheduler for the given cron schedule.
func NewViewMarkerPurgeScheduler(queue Enqueuer, schedule string) *ViewMarkerPurgeScheduler {
	return &ViewMarkerPurgeScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start registers the purge job and starts the cron loop. It stops on its own
// when ctx is cancelled.
func (s *ViewMarkerPurgeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		_ = s.enqueue()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule purge job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.schedule, time.Now())
	logging.Info().
		Str("schedule", s.schedule).
		Str("description", CronDescription(s.schedule)).
		Time("next_run", next).
		Msg("view marker purge scheduler started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *ViewMarkerPurgeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	logging.Info().Msg("view marker purge scheduler stopped")
}

// RunNow enqueues a purge immediately.
func (s *ViewMarkerPurgeScheduler) RunNow() error {
	return s.enqueue()
}

// IsRunning returns whether the scheduler is active.
func (s *ViewMarkerPurgeScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next purge will be enqueued, or nil when stopped.
func (s *ViewMarkerPurgeScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.cron.Entry(s.entryID).Next
	return &t
}

func (s *ViewMarkerPurgeScheduler) enqueue() error {
	ids, err := s.queue.Enqueue(tasks.PurgeViewMarkersTask{})
	if err != nil {
		logging.Error().Err(err).Msg("failed to enqueue view marker purge")
		return fmt.Errorf("enqueue view marker purge: %w", err)
	}
	logging.Debug().Strs("task_ids", ids).Msg("view marker purge enqueued")
	return nil
}
