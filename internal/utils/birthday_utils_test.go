package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBirthdayWithin(t *testing.T) {
	today := time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		birthday time.Time
		days     int
		want     bool
	}{
		{"today", date(1990, time.June, 10), 7, true},
		{"three days ahead", date(1985, time.June, 13), 7, true},
		{"last day of window", date(1985, time.June, 17), 7, true},
		{"ten days ahead", date(1985, time.June, 20), 7, false},
		{"yesterday", date(2000, time.June, 9), 7, false},
		{"year wrap", date(1970, time.January, 1), 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BirthdayWithin(tt.birthday, today, tt.days))
		})
	}
}

func TestBirthdayWithinYearWrap(t *testing.T) {
	// Day 364 of a common year.
	today := date(2025, time.December, 30)

	assert.True(t, BirthdayWithin(date(1999, time.December, 31), today, 3), "day 365")
	assert.True(t, BirthdayWithin(date(1999, time.January, 1), today, 3), "wraps to day 1")
	assert.True(t, BirthdayWithin(date(1999, time.January, 2), today, 3))
	assert.False(t, BirthdayWithin(date(1999, time.January, 3), today, 3))
}

func TestNextBirthdayLeapDay(t *testing.T) {
	assert.Equal(t, date(2025, time.March, 1), NextBirthday(date(2000, time.February, 29), date(2025, time.February, 20)))
	assert.Equal(t, date(2028, time.February, 29), NextBirthday(date(2000, time.February, 29), date(2028, time.February, 1)))
	assert.Equal(t, 0, DaysUntilBirthday(date(2000, time.February, 29), date(2025, time.March, 1)))
}

func TestBirthdayOrdinal(t *testing.T) {
	assert.Less(t, BirthdayOrdinal(date(1990, time.January, 31)), BirthdayOrdinal(date(2010, time.February, 1)))
	assert.Equal(t, BirthdayOrdinal(date(1990, time.May, 5)), BirthdayOrdinal(date(2001, time.May, 5)))
}
