// Package progress sums daily entries into period totals, resolves the
// matching targets and rates each metric against its target.
//
// Every function here is pure; callers load the rows and pass them in.
package progress

import (
	"math"

	"leadership-dashboard/internal/model"
)

// Totals maps each metric to its achieved sum. Sum always fills all metrics.
type Totals map[model.Metric]int

// Targets maps each metric to its resolved target number.
type Targets map[model.Metric]int

// Sum reduces entries to per-metric totals. No entries yields all zeros.
func Sum(entries []model.DailyEntry) Totals {
	t := make(Totals, len(model.AllMetrics))
	for _, m := range model.AllMetrics {
		t[m] = 0
	}
	for _, e := range entries {
		for _, m := range model.AllMetrics {
			t[m] += e.Value(m)
		}
	}
	return t
}

// Add merges o into t.
func (t Totals) Add(o Totals) {
	for m, v := range o {
		t[m] += v
	}
}

// Add merges o into t.
func (t Targets) Add(o Targets) {
	for m, v := range o {
		t[m] += v
	}
}

// TargetSource lists where a user's targets for one period may come from.
// Explicit sources are tried in order; the first one that has the metric
// set wins. Otherwise the daily target is scaled by the working days.
type TargetSource struct {
	Explicit []model.MetricValues
	Daily    model.MetricValues
}

// Resolve returns the target for one metric.
func Resolve(daily *int, workingDays int, explicit ...*int) int {
	for _, e := range explicit {
		if e != nil {
			return *e
		}
	}
	if daily == nil {
		return 0
	}
	return *daily * workingDays
}

// ResolveTargets applies Resolve to every metric.
func ResolveTargets(src TargetSource, workingDays int) Targets {
	out := make(Targets, len(model.AllMetrics))
	for _, m := range model.AllMetrics {
		explicit := make([]*int, 0, len(src.Explicit))
		for _, e := range src.Explicit {
			explicit = append(explicit, e.Get(m))
		}
		out[m] = Resolve(src.Daily.Get(m), workingDays, explicit...)
	}
	return out
}

// Percentage is round(current/target*100), or 0 when there is no target.
func Percentage(current, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(target) * 100))
}

type MetricProgress struct {
	Metric     model.Metric `json:"metric"`
	Current    int          `json:"current"`
	Target     int          `json:"target"`
	Percentage int          `json:"percentage"`
	Color      Color        `json:"color"`
	Projected  *int         `json:"projected,omitempty"`
}

// Build pairs totals with targets in the fixed metric order.
func Build(period Period, totals Totals, targets Targets, cfg Config) []MetricProgress {
	out := make([]MetricProgress, 0, len(model.AllMetrics))
	for _, m := range model.AllMetrics {
		cur, tgt := totals[m], targets[m]
		pct := Percentage(cur, tgt)
		out = append(out, MetricProgress{
			Metric:     m,
			Current:    cur,
			Target:     tgt,
			Percentage: pct,
			Color:      cfg.Color(period, m, cur, pct),
		})
	}
	return out
}

// WithProjection fills Projected for every metric from the elapsed and
// remaining day counts of the period.
func WithProjection(items []MetricProgress, elapsed, remaining int) []MetricProgress {
	for i := range items {
		p := Project(items[i].Current, items[i].Target, elapsed, remaining)
		items[i].Projected = &p
	}
	return items
}
