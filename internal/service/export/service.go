package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/clocklabs/timeclock-backend-go/internal/domain/user"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/storage"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/task"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// terminalWriteTimeout bounds the READY/ERROR status write so a stuck store
// cannot pin a drained runner forever.
const terminalWriteTimeout = 10 * time.Second

type ExportServiceImpl struct {
	jobs    export.JobRepository
	rows    export.RowsRepository
	users   user.UserRepository
	storage storage.FileStorage
	runner  *task.Runner
	urlTTL  time.Duration
}

func NewExportService(jobs export.JobRepository, rows export.RowsRepository, users user.UserRepository, fileStorage storage.FileStorage, runner *task.Runner, urlTTL time.Duration) export.Service {
	return &ExportServiceImpl{
		jobs:    jobs,
		rows:    rows,
		users:   users,
		storage: fileStorage,
		runner:  runner,
		urlTTL:  urlTTL,
	}
}

func (s *ExportServiceImpl) caller(ctx context.Context) (userID string, role user.Role, companyID *string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", nil, export.ErrExportAccessRequired
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", nil, export.ErrExportAccessRequired
	}
	roleStr, _ := claims["role"].(string)
	if company, ok := claims["company_id"].(string); ok && company != "" {
		companyID = &company
	}

	return userID, user.Role(roleStr), companyID, nil
}

// CreateExport implements export.Service. The request returns as soon as the
// PENDING row is committed; rendering happens on the task runner.
func (s *ExportServiceImpl) CreateExport(ctx context.Context, req export.CreateExportRequest) (export.CreateExportResponse, error) {
	userID, role, companyID, err := s.caller(ctx)
	if err != nil {
		return export.CreateExportResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return export.CreateExportResponse{}, err
	}

	kind := export.JobKind(req.Kind)
	filters := req.Filters

	switch kind {
	case export.KindAttendanceSummaryByOrg:
		if role != user.RoleAdmin {
			return export.CreateExportResponse{}, export.ErrSummaryAdminOnly
		}
		// Cross-company aggregate; a per-company scope makes no sense here.
		filters.CompanyID = ""
		filters.EmployeeID = ""
	case export.KindAttendanceDetail:
		scope, err := user.ResolveCompanyScope(role, filters.CompanyID, companyID)
		if err != nil {
			return export.CreateExportResponse{}, err
		}
		if scope == "" {
			return export.CreateExportResponse{}, validator.ValidationErrors{{
				Field:   "filters.company_id",
				Message: "company_id is required for a detail export",
			}}
		}
		filters.CompanyID = scope
	}

	job := export.ReportJob{
		ID:          uuid.NewString(),
		Kind:        kind,
		Status:      export.StatusPending,
		Filters:     filters,
		RequestedBy: userID,
	}

	job, err = s.jobs.Create(ctx, job)
	if err != nil {
		return export.CreateExportResponse{}, fmt.Errorf("failed to create export job: %w", err)
	}

	s.runner.Go("export-job", func(taskCtx context.Context) {
		s.execute(taskCtx, job.ID)
	})

	return export.CreateExportResponse{JobID: job.ID}, nil
}

// GetExportStatus implements export.Service. A job someone else requested is
// reported as missing rather than forbidden.
func (s *ExportServiceImpl) GetExportStatus(ctx context.Context, jobID string) (export.StatusResponse, error) {
	userID, _, _, err := s.caller(ctx)
	if err != nil {
		return export.StatusResponse{}, err
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return export.StatusResponse{}, err
	}
	if job.RequestedBy != userID {
		return export.StatusResponse{}, export.ErrJobNotFound
	}

	resp := export.StatusResponse{
		JobID:  job.ID,
		Status: string(job.Status),
	}

	switch job.Status {
	case export.StatusReady:
		if job.ResultPath != nil {
			url, err := s.storage.GetURL(ctx, *job.ResultPath, s.urlTTL)
			if err != nil {
				return export.StatusResponse{}, fmt.Errorf("failed to sign result URL: %w", err)
			}
			resp.URL = &url
		}
	case export.StatusError:
		resp.Error = job.ErrorMessage
	}

	return resp, nil
}

// execute is the detached half of the pipeline. The conditional RUNNING
// update is the idempotency guard: whoever loses it walks away, and the
// loser's terminal write cannot land because terminal updates are
// conditional too.
func (s *ExportServiceImpl) execute(ctx context.Context, jobID string) {
	taken, err := s.jobs.MarkRunning(ctx, jobID)
	if err != nil {
		slog.Error("Failed to claim export job", slog.String("job_id", jobID), slog.Any("error", err))
		return
	}
	if !taken {
		return
	}

	// Once the job is claimed, a panic must still land a terminal status
	// or the poller would wait on RUNNING forever.
	defer func() {
		if p := recover(); p != nil {
			slog.Error("Export job panicked", slog.String("job_id", jobID), slog.Any("panic", p))
			s.markError(jobID, fmt.Sprintf("export job panicked: %v", p))
		}
	}()

	if err := s.run(ctx, jobID); err != nil {
		slog.Error("Export job failed", slog.String("job_id", jobID), slog.Any("error", err))
		s.markError(jobID, err.Error())
	}
}

// markError writes the terminal ERROR status on a fresh context: the runner
// may already be shutting down and the status must still land.
func (s *ExportServiceImpl) markError(jobID, message string) {
	writeCtx, cancel := context.WithTimeout(context.Background(), terminalWriteTimeout)
	defer cancel()
	if err := s.jobs.MarkError(writeCtx, jobID, message); err != nil {
		slog.Error("Failed to mark export job errored", slog.String("job_id", jobID), slog.Any("error", err))
	}
}

func (s *ExportServiceImpl) run(ctx context.Context, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load export job: %w", err)
	}

	// Authorization is re-derived from the requester's current role, not
	// from whatever was true when the job was queued.
	requester, err := s.users.GetByID(ctx, job.RequestedBy)
	if err != nil {
		return fmt.Errorf("failed to load requester: %w", err)
	}

	var data []byte
	switch job.Kind {
	case export.KindAttendanceDetail:
		data, err = s.renderDetail(ctx, requester, job.Filters)
	case export.KindAttendanceSummaryByOrg:
		data, err = s.renderSummary(ctx, requester, job.Filters)
	default:
		err = fmt.Errorf("unknown export kind %q", job.Kind)
	}
	if err != nil {
		return err
	}

	path := fmt.Sprintf("exports/%s.csv", job.ID)
	if _, err := s.storage.Upload(ctx, bytes.NewReader(data), path, "text/csv"); err != nil {
		return fmt.Errorf("failed to upload export: %w", err)
	}

	if err := s.jobs.MarkReady(ctx, job.ID, path); err != nil {
		return fmt.Errorf("failed to mark export ready: %w", err)
	}

	return nil
}

func (s *ExportServiceImpl) renderDetail(ctx context.Context, requester user.User, filters export.JobFilters) ([]byte, error) {
	scope, err := user.ResolveCompanyScope(requester.Role, filters.CompanyID, requester.CompanyID)
	if err != nil {
		return nil, err
	}
	if scope == "" {
		return nil, fmt.Errorf("detail export has no company scope")
	}

	from, to := parseDateRange(filters.From, filters.To)

	rows, err := s.rows.DetailRows(ctx, export.DetailQuery{
		CompanyID:  scope,
		EmployeeID: filters.EmployeeID,
		From:       from,
		To:         to,
		State:      filters.State,
		Kind:       filters.Kind,
	})
	if err != nil {
		return nil, err
	}

	return renderDetailCSV(rows)
}

func (s *ExportServiceImpl) renderSummary(ctx context.Context, requester user.User, filters export.JobFilters) ([]byte, error) {
	if requester.Role != user.RoleAdmin {
		return nil, export.ErrSummaryAdminOnly
	}

	from, to := parseDateRange(filters.From, filters.To)

	rows, err := s.rows.SummaryRows(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return renderSummaryCSV(rows)
}

// parseDateRange turns the persisted YYYY-MM-DD bounds into times, swapping
// them when inverted. Unparseable values were rejected at create time;
// anything that still slips through is treated as unset.
func parseDateRange(fromStr, toStr string) (from, to *time.Time) {
	if fromStr != "" {
		if t, ok := validator.IsValidDate(fromStr); ok {
			from = &t
		}
	}
	if toStr != "" {
		if t, ok := validator.IsValidDate(toStr); ok {
			to = &t
		}
	}
	if from != nil && to != nil && from.After(*to) {
		from, to = to, from
	}
	return from, to
}
