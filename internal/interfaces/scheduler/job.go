package scheduler

import "context"

// Job is a unit of work executed by the worker pool.
type Job interface {
	// Execute runs the job. The context carries cancellation and timeout.
	Execute(ctx context.Context) error

	// UserID returns the user the job works on behalf of. Used for logging.
	UserID() string

	// Description returns a human-readable description of the job.
	Description() string
}
