package model

import "time"

// DateRange represents an inclusive time period.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// DayRange returns the first and last instant of the day containing t.
func DayRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 0, 1).Add(-time.Millisecond),
	}
}

// MonthRange returns the first and last instant of the month containing t.
func MonthRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
	}
}
