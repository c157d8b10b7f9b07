package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/clocklabs/timeclock-backend-go/internal/domain/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{30 * time.Minute, "00:30"},
		{8*time.Hour + 30*time.Minute, "08:30"},
		{9 * time.Hour, "09:00"},
		{26*time.Hour + 5*time.Minute, "26:05"},
		{-time.Hour, "00:00"}, // clamped
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatDuration(c.d), "formatDuration(%v)", c.d)
	}
}

func TestRenderDetailCSV(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(8*time.Hour + 30*time.Minute)

	data, err := renderDetailCSV([]export.DetailRow{
		{EmployeeName: "Torres, Ana", EmployeeID: "emp-1", Kind: "SHIFT", StartTime: start, EndTime: &end},
		{EmployeeName: "Bo Lin", EmployeeID: "emp-2", Kind: "SHIFT", StartTime: start, EndTime: nil},
	})
	require.NoError(t, err)

	// Rows are newline separated, not CRLF
	assert.False(t, bytes.Contains(data, []byte("\r\n")))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"employee", "employee_id", "kind", "start_time", "end_time", "duration"}, records[0])

	// The comma inside the name survives the round trip
	assert.Equal(t, "Torres, Ana", records[1][0])
	assert.Equal(t, "08:30 h", records[1][5])

	assert.Equal(t, "", records[2][4])
	assert.Equal(t, "in progress", records[2][5])
}

func TestRenderDetailCSV_FieldWithDelimiters(t *testing.T) {
	// A field carrying the separator, a quote and a newline must survive
	// the render/parse round trip unchanged.
	name := "Torres, \"Ana\"\nJr."
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	data, err := renderDetailCSV([]export.DetailRow{
		{EmployeeName: name, EmployeeID: "emp-1", Kind: "SHIFT", StartTime: start},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, name, records[1][0])
}

func TestRenderDetailCSV_Empty(t *testing.T) {
	data, err := renderDetailCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "employee,employee_id,kind,start_time,end_time,duration\n", string(data))
}

func TestRenderSummaryCSV(t *testing.T) {
	data, err := renderSummaryCSV([]export.SummaryRow{
		{CompanyID: "company-1", CompanyName: "Acme", EntryCount: 12, TotalMinutes: 540},
		{CompanyID: "company-2", CompanyName: "Empty Co", EntryCount: 0, TotalMinutes: 0},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "company_id,company,entries,total_time", lines[0])
	assert.Equal(t, "company-1,Acme,12,09:00", lines[1])
	assert.Equal(t, "company-2,Empty Co,0,00:00", lines[2])
}
