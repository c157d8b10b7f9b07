package attendance

import "time"

type EntryKind string

const (
	KindShift      EntryKind = "SHIFT"
	KindLunchBreak EntryKind = "LUNCH_BREAK"
	KindOtherBreak EntryKind = "OTHER_BREAK"
	KindMedical    EntryKind = "MEDICAL"
)

// BreakKinds is the allow-list of pause kinds. Everything here must be
// nested inside an open SHIFT entry.
var BreakKinds = []EntryKind{KindLunchBreak, KindOtherBreak, KindMedical}

// IsBreak reports whether k is a pause kind rather than a shift.
func (k EntryKind) IsBreak() bool {
	for _, b := range BreakKinds {
		if k == b {
			return true
		}
	}
	return false
}

// TimeEntry is one open/closed interval of an employee's day. EndTime nil
// means the interval is still running. For a given employee at most one
// entry per kind may be open, and a break may be open only while a SHIFT
// entry is open; the serializable toggle transaction maintains both.
type TimeEntry struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Kind       EntryKind
	StartTime  time.Time
	EndTime    *time.Time
	Edited     bool
	EditReason *string
	EditedBy   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}

// Open reports whether the entry is still running.
func (e TimeEntry) Open() bool {
	return e.EndTime == nil
}
