package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
)

var detailHeader = []string{"employee", "employee_id", "kind", "start_time", "end_time", "duration"}

var summaryHeader = []string{"company_id", "company", "entries", "total_time"}

// formatDuration renders HH:MM, zero padded, hours unbounded. Negative
// spans (clock skew on edited entries) clamp to 00:00 rather than leaking
// a minus sign into the sheet.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d.Minutes())
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func renderDetailCSV(rows []export.DetailRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(detailHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		endTime := ""
		duration := "in progress"
		if row.EndTime != nil {
			endTime = row.EndTime.Format(time.RFC3339)
			duration = formatDuration(row.EndTime.Sub(row.StartTime)) + " h"
		}

		record := []string{
			row.EmployeeName,
			row.EmployeeID,
			row.Kind,
			row.StartTime.Format(time.RFC3339),
			endTime,
			duration,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func renderSummaryCSV(rows []export.SummaryRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(summaryHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.CompanyID,
			row.CompanyName,
			fmt.Sprintf("%d", row.EntryCount),
			formatDuration(time.Duration(row.TotalMinutes) * time.Minute),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
