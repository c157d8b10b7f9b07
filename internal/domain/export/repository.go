package export

import (
	"context"
	"time"
)

// JobRepository persists export jobs. The status transitions are conditional
// updates so a terminal state can never be overwritten.
type JobRepository interface {
	Create(ctx context.Context, job ReportJob) (ReportJob, error)
	GetByID(ctx context.Context, id string) (ReportJob, error)

	// MarkRunning transitions PENDING -> RUNNING. Returns false when the
	// job was already taken or finished, which doubles as the idempotency
	// guard against double invocation.
	MarkRunning(ctx context.Context, id string) (bool, error)

	// MarkReady transitions RUNNING -> READY and records the artifact path.
	MarkReady(ctx context.Context, id, resultPath string) error

	// MarkError moves a non-terminal job to ERROR with a captured message.
	MarkError(ctx context.Context, id, message string) error
}

// RowsRepository feeds the renderers.
type RowsRepository interface {
	DetailRows(ctx context.Context, q DetailQuery) ([]DetailRow, error)
	SummaryRows(ctx context.Context, from, to *time.Time) ([]SummaryRow, error)
}
