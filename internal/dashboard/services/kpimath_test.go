package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarciapsic/clinica-backend/internal/dashboard/models"
)

func TestVariance(t *testing.T) {
	cases := []struct {
		current, previous, want float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{150, 100, 50},
		{50, 100, -50},
		{100, 150, -33.33},
		{1, 3, -66.67},
		{110, 100, 10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Variance(tc.current, tc.previous),
			"current=%v previous=%v", tc.current, tc.previous)
	}
}

func TestMonthWindowWrapsDecember(t *testing.T) {
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	curM, curY, prevM, prevY := MonthWindow(jan)
	assert.Equal(t, 1, curM)
	assert.Equal(t, 2025, curY)
	assert.Equal(t, 12, prevM)
	assert.Equal(t, 2024, prevY)

	jul := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	curM, curY, prevM, prevY = MonthWindow(jul)
	assert.Equal(t, 7, curM)
	assert.Equal(t, 2025, curY)
	assert.Equal(t, 6, prevM)
	assert.Equal(t, 2025, prevY)
}

func TestNextBusinessDay(t *testing.T) {
	// 2025-03-03 is a Monday.
	monday := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		day  time.Time
		want string
	}{
		{monday, "2025-03-04"},                  // Mon -> Tue
		{monday.AddDate(0, 0, 3), "2025-03-07"}, // Thu -> Fri
		{monday.AddDate(0, 0, 4), "2025-03-10"}, // Fri -> Mon
		{monday.AddDate(0, 0, 5), "2025-03-10"}, // Sat -> Mon
		{monday.AddDate(0, 0, 6), "2025-03-10"}, // Sun -> Mon
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextBusinessDay(tc.day).Format("2006-01-02"),
			"from %s", tc.day.Weekday())
	}
}

func TestBuildDistributionOmitsZeroBuckets(t *testing.T) {
	counts := []models.BucketCount{
		{Label: "cash", Count: 1},
		{Label: "card", Count: 0},
		{Label: "transfer", Count: 3},
	}
	entries := BuildDistribution(counts, 4)
	require.Len(t, entries, 2)
	assert.Equal(t, "cash", entries[0].Label)
	assert.Equal(t, 25.0, entries[0].Percentage)
	assert.Equal(t, "transfer", entries[1].Label)
	assert.Equal(t, 75.0, entries[1].Percentage)
}

// Two completed sessions paid cash (100) and card (50) must split 66.67/33.33.
func TestBuildDistributionPaymentMethodScenario(t *testing.T) {
	counts := []models.BucketCount{
		{Label: "cash", Count: 2},
		{Label: "card", Count: 1},
	}
	entries := BuildDistribution(counts, 3)
	require.Len(t, entries, 2)
	assert.Equal(t, 66.67, entries[0].Percentage)
	assert.Equal(t, 33.33, entries[1].Percentage)
}

// Before zero-bucket filtering, percentages must account for the full total:
// reconstructing the total from count/percentage recovers 100%.
func TestBuildDistributionPercentagesReconstruct(t *testing.T) {
	counts := []models.BucketCount{
		{Label: "a", Count: 5},
		{Label: "b", Count: 0},
		{Label: "c", Count: 15},
	}
	total := 20
	entries := BuildDistribution(counts, total)
	sum := 0.0
	for _, e := range entries {
		sum += e.Percentage
	}
	assert.LessOrEqual(t, sum, 100.0+1e-9)
	// The omitted bucket had zero count, so the survivors carry the full 100%.
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestBuildDistributionEmptyTotal(t *testing.T) {
	entries := BuildDistribution([]models.BucketCount{{Label: "cash", Count: 0}}, 0)
	assert.Empty(t, entries)
}

// A session whose start second already passed in the current minute is no
// longer upcoming; the clock compares at second precision.
func TestSplitUpcomingSecondPrecision(t *testing.T) {
	all := []models.UpcomingSession{
		{ID: 1, Date: "2025-03-03", StartTime: "10:30:00"},
		{ID: 2, Date: "2025-03-03", StartTime: "10:31:00"},
		{ID: 3, Date: "2025-03-04", StartTime: "09:00:00"},
	}
	today, tomorrow := splitUpcoming(all, "2025-03-03", "2025-03-04", "10:30:45")

	require.Len(t, today.Sessions, 1)
	assert.Equal(t, 2, today.Sessions[0].ID)
	require.NotNil(t, today.NextAppointment)
	assert.Equal(t, 2, today.NextAppointment.ID)
	require.Len(t, tomorrow, 1)
	assert.Equal(t, 3, tomorrow[0].ID)
}

func TestSplitUpcomingFallsBackToTomorrow(t *testing.T) {
	all := []models.UpcomingSession{
		{ID: 1, Date: "2025-03-03", StartTime: "08:00:00"},
		{ID: 2, Date: "2025-03-04", StartTime: "09:00:00"},
	}
	today, tomorrow := splitUpcoming(all, "2025-03-03", "2025-03-04", "17:00:00")

	assert.Empty(t, today.Sessions)
	require.NotNil(t, today.NextAppointment)
	assert.Equal(t, 2, today.NextAppointment.ID)
	require.Len(t, tomorrow, 1)
	assert.Equal(t, 2, tomorrow[0].ID)
}
