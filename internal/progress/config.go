package progress

import (
	"fmt"

	"leadership-dashboard/internal/model"
)

type Color string

const (
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
)

// Bands is the generic percentage banding: below Yellow is red, up to and
// including Green is yellow, above Green is green.
type Bands struct {
	Yellow int `yaml:"yellow" json:"yellow"`
	Green  int `yaml:"green" json:"green"`
}

// Threshold holds the minimum achieved count for each colour on monthly
// dashboards. A threshold with Green == 0 counts as not configured.
// Red is the floor of the scale: it is stored and validated for the admin
// form, but every count below Yellow rates red, including counts below Red.
type Threshold struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
	Green  int `json:"green"`
}

func (t Threshold) configured() bool { return t.Green > 0 }

func (t Threshold) Validate() error {
	if t.Red < 0 || t.Red > t.Yellow || t.Yellow > t.Green {
		return fmt.Errorf("thresholds must satisfy 0 <= red <= yellow <= green, got %d/%d/%d", t.Red, t.Yellow, t.Green)
	}
	return nil
}

// Config carries everything that rates progress. It is built once at start
// and handed to whoever needs it.
type Config struct {
	Bands               Bands                      `yaml:"bands" json:"bands"`
	WorkingDaysPerMonth int                        `yaml:"working_days_per_month" json:"working_days_per_month"`
	WorkingDaysPerWeek  int                        `yaml:"working_days_per_week" json:"working_days_per_week"`
	Thresholds          map[model.Metric]Threshold `yaml:"-" json:"thresholds"`
}

func DefaultConfig() Config {
	return Config{
		Bands:               Bands{Yellow: 30, Green: 80},
		WorkingDaysPerMonth: 22,
		WorkingDaysPerWeek:  5,
	}
}

// WithThresholds returns a copy of c using t as the per-metric thresholds.
func (c Config) WithThresholds(t map[model.Metric]Threshold) Config {
	cp := make(map[model.Metric]Threshold, len(t))
	for m, v := range t {
		cp[m] = v
	}
	c.Thresholds = cp
	return c
}

// Color rates one metric. Configured thresholds win on monthly dashboards;
// everything else uses the percentage bands.
func (c Config) Color(period Period, m model.Metric, current, pct int) Color {
	if period == PeriodMonth {
		if t, ok := c.Thresholds[m]; ok && t.configured() {
			switch {
			case current >= t.Green:
				return Green
			case current >= t.Yellow:
				return Yellow
			default:
				return Red
			}
		}
	}
	switch {
	case pct < c.Bands.Yellow:
		return Red
	case pct <= c.Bands.Green:
		return Yellow
	default:
		return Green
	}
}
