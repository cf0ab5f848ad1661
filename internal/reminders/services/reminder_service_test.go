package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-03-03 is a Monday.
func day(offset int) time.Time {
	return time.Date(2025, time.March, 3+offset, 9, 0, 0, 0, time.UTC)
}

func TestNextReminderDateWeekdaysTargetTomorrow(t *testing.T) {
	for offset := 0; offset <= 3; offset++ { // Mon..Thu
		got := NextReminderDate(day(offset))
		assert.Equal(t, day(offset).AddDate(0, 0, 1).Format("2006-01-02"), got.Format("2006-01-02"),
			"from %s", day(offset).Weekday())
	}
}

func TestNextReminderDateWeekendTargetsNextMonday(t *testing.T) {
	nextMonday := "2025-03-10"
	for offset := 4; offset <= 6; offset++ { // Fri, Sat, Sun
		got := NextReminderDate(day(offset))
		assert.Equal(t, nextMonday, got.Format("2006-01-02"), "from %s", day(offset).Weekday())
		assert.Equal(t, time.Monday, got.Weekday())
		// The resolved date always moves strictly forward.
		assert.True(t, got.After(day(offset)))
	}
}

func TestReminderDescription(t *testing.T) {
	assert.Equal(t, "mañana", ReminderDescription(day(0)))  // Monday
	assert.Equal(t, "mañana", ReminderDescription(day(3)))  // Thursday
	assert.Equal(t, "el próximo lunes", ReminderDescription(day(4))) // Friday
	assert.Equal(t, "el próximo lunes", ReminderDescription(day(6))) // Sunday
}
