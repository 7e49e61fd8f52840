package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is one document to process in batch mode. Documents are
// independent; nothing carries over between them.
type Job struct {
	ID          uuid.UUID
	Path        string
	SubmittedAt time.Time
}

// Outcome is the result of one job: which job, what went wrong (nil on
// success) and how long the pipeline ran. The queue keeps one per
// processed job so the caller can report on the batch after draining.
type Outcome struct {
	Job     Job
	Err     error
	Elapsed time.Duration
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context) []Outcome
}

// DocumentProcessor is what the queue drives: one full pipeline run for
// one document path.
type DocumentProcessor interface {
	ProcessPath(ctx context.Context, path string) error
}
