package export

import "time"

type JobKind string

const (
	KindAttendanceDetail       JobKind = "ATTENDANCE_DETAIL"
	KindAttendanceSummaryByOrg JobKind = "ATTENDANCE_SUMMARY_BY_ORG"
)

type JobStatus string

const (
	StatusPending JobStatus = "PENDING"
	StatusRunning JobStatus = "RUNNING"
	StatusReady   JobStatus = "READY"
	StatusError   JobStatus = "ERROR"
)

// Terminal reports whether no further status transition may occur.
func (s JobStatus) Terminal() bool {
	return s == StatusReady || s == StatusError
}

// JobFilters is the filter set persisted with the job. The effective company
// scope is re-derived from the requester's current role at execution time,
// never trusted from this blob.
type JobFilters struct {
	CompanyID  string `json:"company_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	From       string `json:"from,omitempty"`  // YYYY-MM-DD
	To         string `json:"to,omitempty"`    // YYYY-MM-DD
	State      string `json:"state,omitempty"` // "open" | "closed"
	Kind       string `json:"kind,omitempty"`  // entry kind allow-list
}

// ReportJob is one asynchronous export. Status moves PENDING -> RUNNING ->
// READY|ERROR and never leaves a terminal state; ResultPath is set exactly
// when status is READY.
type ReportJob struct {
	ID           string
	Kind         JobKind
	Status       JobStatus
	Filters      JobFilters
	RequestedBy  string
	ResultPath   *string
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DetailRow is one exported time entry.
type DetailRow struct {
	EmployeeName string
	EmployeeID   string
	Kind         string
	StartTime    time.Time
	EndTime      *time.Time
}

// SummaryRow aggregates closed time per company for platform operators.
type SummaryRow struct {
	CompanyID    string
	CompanyName  string
	EntryCount   int64
	TotalMinutes int64
}
