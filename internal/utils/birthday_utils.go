package utils

import "time"

// NextBirthday returns the first anniversary of birthday on or after the calendar day of now.
// The year of birthday is ignored. A 29 February birthday falls on 1 March in common years.
func NextBirthday(birthday, now time.Time) time.Time {
	today := dateOf(now)
	for year := today.Year(); ; year++ {
		occurrence := anniversary(birthday, year)
		if !occurrence.Before(today) {
			return occurrence
		}
	}
}

// DaysUntilBirthday is the number of days from the calendar day of now to the next anniversary.
func DaysUntilBirthday(birthday, now time.Time) int {
	return int(NextBirthday(birthday, now).Sub(dateOf(now)).Hours() / 24)
}

// BirthdayWithin reports whether the next anniversary lies in the window [today, today+days].
func BirthdayWithin(birthday, now time.Time, days int) bool {
	if days < 0 {
		return false
	}
	return DaysUntilBirthday(birthday, now) <= days
}

// BirthdayOrdinal orders birthdays by month and day, ignoring the year.
func BirthdayOrdinal(birthday time.Time) int {
	return int(birthday.Month())*100 + birthday.Day()
}

func anniversary(birthday time.Time, year int) time.Time {
	if birthday.Month() == time.February && birthday.Day() == 29 && !isLeap(year) {
		return time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
