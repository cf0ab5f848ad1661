package services

import (
	"math"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/dashboard/models"
)

// round2 rounds to 2 decimals. Intermediate aggregation stays unrounded;
// only output values pass through here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Variance is the month-over-month percentage change: 0 when both periods
// are zero, 100 when only the previous period is zero, else the exact
// percentage-change formula rounded to 2 decimals.
func Variance(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return round2((current - previous) / previous * 100)
}

// MonthWindow yields the current and previous (month, year) pair, wrapping
// December back to January of the prior year.
func MonthWindow(now time.Time) (curMonth, curYear, prevMonth, prevYear int) {
	curMonth = int(now.Month())
	curYear = now.Year()
	prevMonth = curMonth - 1
	prevYear = curYear
	if prevMonth == 0 {
		prevMonth = 12
		prevYear--
	}
	return
}

// NextBusinessDay is the date used for "tomorrow's sessions": Friday skips
// to Monday (+3), Saturday to Monday (+2), any other day is simply the next
// calendar day.
func NextBusinessDay(now time.Time) time.Time {
	switch now.Weekday() {
	case time.Friday:
		return now.AddDate(0, 0, 3)
	case time.Saturday:
		return now.AddDate(0, 0, 2)
	default:
		return now.AddDate(0, 0, 1)
	}
}

// BuildDistribution converts labeled counts into percentage entries over the
// given total, dropping zero-count buckets. Percentages are rounded to 2
// decimals.
func BuildDistribution(counts []models.BucketCount, total int) []models.DistributionEntry {
	entries := []models.DistributionEntry{}
	if total == 0 {
		return entries
	}
	for _, c := range counts {
		if c.Count == 0 {
			continue
		}
		entries = append(entries, models.DistributionEntry{
			Label:      c.Label,
			Count:      c.Count,
			Percentage: round2(float64(c.Count) / float64(total) * 100),
		})
	}
	return entries
}

// dropZeroBuckets filters zero-count entries out of a labeled-count list.
func dropZeroBuckets(counts []models.BucketCount) []models.BucketCount {
	out := []models.BucketCount{}
	for _, c := range counts {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}
