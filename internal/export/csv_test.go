package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightpulse/service-analytics/internal/models"
	"github.com/insightpulse/service-analytics/internal/store"
)

func TestWriteDailyCSVRoundTrip(t *testing.T) {
	first, err := models.ParseDate("2025-03-01")
	require.NoError(t, err)

	rows := []models.DailyRecord{
		{
			Date: first, DailyRevenue: 5123.45, Orders: 52, SalesUnits: 130,
			ActiveCustomers: 1204, NewCustomers: 14, ChurnedCustomers: 3,
			ChurnRate: 3.21, AvgOrderValue: 98.53, DayOfWeek: 5, IsWeekend: 1,
		},
		{
			Date: first.AddDays(1), DailyRevenue: 4890.1, Orders: 47, SalesUnits: 115,
			ActiveCustomers: 1210, NewCustomers: 11, ChurnedCustomers: 2,
			ChurnRate: 3.18, AvgOrderValue: 104.04, DayOfWeek: 6, IsWeekend: 1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDailyCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(store.DailyColumns, ","), lines[0])
	assert.Equal(t, "2025-03-01,5123.45,52,130,1204,14,3,3.21,98.53,5,1", lines[1])

	parsed, err := store.ReadDailyCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestWriteDailyCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyCSV(&buf, nil))
	assert.Equal(t, strings.Join(store.DailyColumns, ",")+"\n", buf.String())
}

func TestWriteWeeklyCSVRoundTrip(t *testing.T) {
	week, err := models.ParseDate("2025-02-24")
	require.NoError(t, err)

	rows := []models.WeeklyRecord{
		{
			Week: week, WeeklyRevenue: 35250.75, Orders: 352, SalesUnits: 860,
			AvgCustomers: 1201.5, NewCustomers: 85, ChurnedCustomers: 19,
			AvgOrderValue: 100.14, ChurnRate: 1.58,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWeeklyCSV(&buf, rows))

	parsed, err := store.ReadWeeklyCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567.89", "1,234,567.89"},
		{"-1234", "-1,234"},
		{"-123456.50", "-123,456.50"},
		{"12.00", "12.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in), "input %q", tt.in)
	}
}
