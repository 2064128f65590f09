package progress

import (
	"fmt"
	"math"
	"time"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodRange Period = "range"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodRange:
		return Period(s), nil
	case "":
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last day of the month containing d.
func MonthRange(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// WeekRange returns Monday and Sunday of the week containing d.
func WeekRange(d time.Time) (time.Time, time.Time) {
	d = Day(d)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// WorkingDays counts Monday to Friday in [from, to].
func WorkingDays(from, to time.Time) int {
	from, to = Day(from), Day(to)
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// PeriodDays splits [start, end] around today. Today counts as elapsed.
func PeriodDays(start, end, today time.Time) (elapsed, remaining int) {
	start, end, today = Day(start), Day(end), Day(today)
	total := daysBetween(start, end) + 1
	switch {
	case today.Before(start):
		return 0, total
	case today.After(end):
		return total, 0
	}
	elapsed = daysBetween(start, today) + 1
	return elapsed, total - elapsed
}

// Project extrapolates the period total linearly from the current pace.
// With nothing elapsed yet the target is returned unchanged.
func Project(current, target, elapsed, remaining int) int {
	if elapsed <= 0 {
		return target
	}
	daily := float64(current) / float64(elapsed)
	return int(math.Round(float64(current) + daily*float64(remaining)))
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
