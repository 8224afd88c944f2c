package svgcard

import (
	"fmt"
	"time"
)

// AgeParts returns the calendar difference between bday and now as
// whole years, months and days, borrowing from the longer unit the way
// humans count ages.
func AgeParts(bday, now time.Time) (years, months, days int) {
	years = now.Year() - bday.Year()
	months = int(now.Month()) - int(bday.Month())
	days = now.Day() - bday.Day()

	if days < 0 {
		months--
		// Day 0 resolves to the last day of the previous month.
		prevMonthEnd := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, time.UTC)
		days += prevMonthEnd.Day()
	}
	if months < 0 {
		years--
		months += 12
	}
	return years, months, days
}

// FormatAge renders the time since bday, with a small celebration when
// it lands exactly on the birthday.
func FormatAge(bday, now time.Time) string {
	years, months, days := AgeParts(bday, now)

	out := fmt.Sprintf("%d %s, %d %s, %d %s",
		years, plural("year", years),
		months, plural("month", months),
		days, plural("day", days),
	)
	if months == 0 && days == 0 {
		out += " !!!"
	}
	return out
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
