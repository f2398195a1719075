package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/metrics"
)

// ViewMarkerPurger deletes view markers whose session has expired.
type ViewMarkerPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// PurgeViewMarkersTask removes expired (session, book) view markers so a
// returning reader with a new session counts again.
type PurgeViewMarkersTask struct{}

// Config returns the queue configuration for view marker purges.
func (t PurgeViewMarkersTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "purge_view_markers",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeViewMarkersProcessor creates a processor function for PurgeViewMarkersTask.
func PurgeViewMarkersProcessor(purger ViewMarkerPurger, now func() time.Time) backlite.QueueProcessor[PurgeViewMarkersTask] {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, _ PurgeViewMarkersTask) error {
		if purger == nil {
			return fmt.Errorf("view marker purger not configured")
		}

		deleted, err := purger.PurgeExpired(ctx, now())
		if err != nil {
			return fmt.Errorf("purge view markers: %w", err)
		}
		metrics.RecordPurge(deleted)

		logging.Info().Int64("deleted", deleted).Msg("purged expired view markers")
		return nil
	}
}

// NewPurgeViewMarkersQueue creates a backlite queue for view marker purges.
func NewPurgeViewMarkersQueue(purger ViewMarkerPurger) backlite.Queue {
	return backlite.NewQueue(PurgeViewMarkersProcessor(purger, time.Now))
}
