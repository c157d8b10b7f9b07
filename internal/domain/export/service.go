package export

import "context"

// Service decouples slow report generation from the request that triggers
// it. Create returns as soon as the PENDING row exists; the heavy work runs
// detached and owns writing its own terminal status.
type Service interface {
	CreateExport(ctx context.Context, req CreateExportRequest) (CreateExportResponse, error)
	GetExportStatus(ctx context.Context, jobID string) (StatusResponse, error)
}
