package ledger

import "time"

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD calendar day as local midnight. time.Parse would read it
// as UTC midnight, which lands on the previous day in negative-offset zones.
// Malformed input yields the zero time, which sorts before every real date.
func ParseDay(s string) time.Time {
	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// YearEnd returns local midnight of December 31st of the given year.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
}
