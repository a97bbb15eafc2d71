package utils

import (
	"time"

	"cloud.google.com/go/civil"
)

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 31
}

// MonthRange returns the first and last day of the month containing d.
func MonthRange(d civil.Date) (civil.Date, civil.Date) {
	start := civil.Date{Year: d.Year, Month: d.Month, Day: 1}
	end := civil.Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
	return start, end
}

// ParseDate parses YYYY-MM-DD, the format dates take in query strings.
func ParseDate(s string) (civil.Date, error) {
	return civil.ParseDate(s)
}
