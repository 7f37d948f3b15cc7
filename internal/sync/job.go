package sync

import (
	"context"
	"errors"

	"github.com/ironloft/gymboard/internal/domain"
)

// SweepJob runs one outbound sweep for a manager. Scheduled on the worker
// pool at a fixed interval; a bounce off the in-flight guard is not an error.
type SweepJob struct {
	manager Manager
}

// NewSweepJob creates a sweep job for a manager.
func NewSweepJob(manager Manager) *SweepJob {
	return &SweepJob{manager: manager}
}

// Process implements worker.Job.
func (j *SweepJob) Process(ctx context.Context) error {
	_, err := j.manager.SyncAllPending(ctx)
	if errors.Is(err, domain.ErrSyncInProgress) {
		return nil
	}
	return err
}
