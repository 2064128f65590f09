// Package schedule expands recurring event rules into concrete dates.
package schedule

import (
	"sort"
	"time"
)

// Horizon is the number of 7-day windows Slots looks ahead.
const Horizon = 12

// Rule describes when an event recurs. Days are ISO weekdays (1 = Monday,
// 7 = Sunday). Interval is the number of weeks between active weeks, counted
// from the anchor's week.
type Rule struct {
	Anchor   time.Time
	Days     []int
	Interval int
	End      *time.Time
}

func (r Rule) normalized() Rule {
	seen := map[int]bool{}
	days := make([]int, 0, len(r.Days))
	for _, d := range r.Days {
		if d < 1 || d > 7 || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	if len(days) == 0 {
		days = []int{1}
	}
	sort.Ints(days)
	r.Days = days
	if r.Interval < 1 {
		r.Interval = 1
	}
	r.Anchor = day(r.Anchor)
	if r.End != nil {
		end := day(*r.End)
		r.End = &end
	}
	return r
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

// Slots lists the occurrences of r inside the next weeks 7-day windows,
// starting with today. The result is ascending and never contains a date
// before today, before the anchor or after the end date.
func Slots(r Rule, today time.Time, weeks int) []time.Time {
	r = r.normalized()
	today = day(today)
	todayWD := ISOWeekday(today)

	offsets := make([]int, 0, len(r.Days))
	for _, d := range r.Days {
		offsets = append(offsets, (d-todayWD+7)%7)
	}
	sort.Ints(offsets)

	var out []time.Time
	for w := 0; w < weeks; w++ {
		for _, off := range offsets {
			date := today.AddDate(0, 0, 7*w+off)
			if r.inRange(date) && r.activeWeek(date) {
				out = append(out, date)
			}
		}
	}
	return out
}

// Occurs reports whether date is an occurrence of r, ignoring the horizon.
func Occurs(r Rule, date time.Time) bool {
	r = r.normalized()
	date = day(date)
	if !r.inRange(date) || !r.activeWeek(date) {
		return false
	}
	wd := ISOWeekday(date)
	for _, d := range r.Days {
		if d == wd {
			return true
		}
	}
	return false
}

func (r Rule) inRange(date time.Time) bool {
	if date.Before(r.Anchor) {
		return false
	}
	return r.End == nil || !date.After(*r.End)
}

func (r Rule) activeWeek(date time.Time) bool {
	if r.Interval == 1 {
		return true
	}
	weeks := int(weekStart(date).Sub(weekStart(r.Anchor)).Hours()) / (24 * 7)
	return weeks >= 0 && weeks%r.Interval == 0
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func weekStart(t time.Time) time.Time {
	t = day(t)
	return t.AddDate(0, 0, -(ISOWeekday(t) - 1))
}
