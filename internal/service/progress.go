package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"gorm.io/gorm"
)

// Query selects the period a progress report covers. Date picks the week or
// month; From and To bound a custom range.
type Query struct {
	Period progress.Period
	Date   time.Time
	From   time.Time
	To     time.Time
}

// Bounds returns the first and last day covered by q.
func (q Query) Bounds() (time.Time, time.Time, error) {
	switch q.Period {
	case progress.PeriodWeek:
		s, e := progress.WeekRange(q.Date)
		return s, e, nil
	case progress.PeriodMonth, "":
		s, e := progress.MonthRange(q.Date)
		return s, e, nil
	case progress.PeriodRange:
		if q.From.IsZero() || q.To.IsZero() {
			return time.Time{}, time.Time{}, invalid("range needs from and to")
		}
		from, to := progress.Day(q.From), progress.Day(q.To)
		if to.Before(from) {
			return time.Time{}, time.Time{}, invalid("from %s is after to %s", model.NewDate(from), model.NewDate(to))
		}
		return from, to, nil
	}
	return time.Time{}, time.Time{}, invalid("unknown period %q", q.Period)
}

// Report is the progress of one user or one group over a period.
type Report struct {
	UserID        int64                     `json:"user_id,omitempty"`
	TeamID        *int64                    `json:"team_id,omitempty"`
	Members       int                       `json:"members,omitempty"`
	Period        progress.Period           `json:"period"`
	From          model.Date                `json:"from"`
	To            model.Date                `json:"to"`
	ElapsedDays   int                       `json:"elapsed_days"`
	RemainingDays int                       `json:"remaining_days"`
	Metrics       []progress.MetricProgress `json:"metrics"`
}

type ProgressService struct {
	db       *gorm.DB
	settings *SettingsService
}

func NewProgressService(db *gorm.DB, settings *SettingsService) *ProgressService {
	return &ProgressService{db: db, settings: settings}
}

// ForUser reports one user's progress. Users see their own, leaders their
// subtree and admins everybody.
func (s *ProgressService) ForUser(ctx context.Context, actor Actor, userID int64, q Query, today time.Time) (*Report, error) {
	if err := canViewUser(ctx, s.db, actor, userID); err != nil {
		return nil, err
	}
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, notFound("user", err)
	}
	r, err := s.report(ctx, []model.User{u}, q, today)
	if err != nil {
		return nil, err
	}
	r.UserID = userID
	return r, nil
}

// ForTeam sums the progress of a group. With a team id the group is every
// active member of that team and its sub-teams; without one it is the
// actor together with their reporting subtree.
func (s *ProgressService) ForTeam(ctx context.Context, actor Actor, teamID *int64, q Query, today time.Time) (*Report, error) {
	members, err := s.Members(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	r, err := s.report(ctx, members, q, today)
	if err != nil {
		return nil, err
	}
	r.TeamID = teamID
	r.Members = len(members)
	return r, nil
}

// Members resolves the group ForTeam reports on.
func (s *ProgressService) Members(ctx context.Context, actor Actor, teamID *int64) ([]model.User, error) {
	if !actor.IsAdmin() && !actor.IsLeader() {
		return nil, ErrForbidden
	}
	q := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name, id")
	if teamID != nil {
		var team model.Team
		if err := s.db.WithContext(ctx).First(&team, *teamID).Error; err != nil {
			return nil, notFound("team", err)
		}
		tree, err := teamTree(ctx, s.db)
		if err != nil {
			return nil, err
		}
		teams := append([]int64{team.ID}, tree.Descendants(team.ID)...)
		q = q.Where("team_id IN ?", teams)
		if !actor.IsAdmin() {
			visible, _, err := visibleUserIDs(ctx, s.db, actor)
			if err != nil {
				return nil, err
			}
			q = q.Where("id IN ?", append(visible, actor.ID))
		}
	} else {
		ids := []int64{actor.ID}
		if !actor.IsAdmin() {
			visible, _, err := visibleUserIDs(ctx, s.db, actor)
			if err != nil {
				return nil, err
			}
			ids = append(ids, visible...)
			q = q.Where("id IN ?", ids)
		}
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return users, nil
}

func (s *ProgressService) report(ctx context.Context, users []model.User, q Query, today time.Time) (*Report, error) {
	start, end, err := q.Bounds()
	if err != nil {
		return nil, err
	}
	period := q.Period
	if period == "" {
		period = progress.PeriodMonth
	}
	cfg := s.settings.Config(ctx)

	totals, targets, err := s.collect(ctx, users, period, start, end, cfg)
	if err != nil {
		return nil, err
	}
	groupTotals := progress.Sum(nil)
	groupTargets := progress.Targets{}
	for _, u := range users {
		groupTotals.Add(totals[u.ID])
		groupTargets.Add(targets[u.ID])
	}

	elapsed, remaining := progress.PeriodDays(start, end, today)
	items := progress.Build(period, groupTotals, groupTargets, cfg)
	return &Report{
		Period:        period,
		From:          model.NewDate(start),
		To:            model.NewDate(end),
		ElapsedDays:   elapsed,
		RemainingDays: remaining,
		Metrics:       progress.WithProjection(items, elapsed, remaining),
	}, nil
}

// perUser builds one metric list per user for the same period.
func (s *ProgressService) perUser(ctx context.Context, users []model.User, q Query, today time.Time) (map[int64][]progress.MetricProgress, error) {
	start, end, err := q.Bounds()
	if err != nil {
		return nil, err
	}
	cfg := s.settings.Config(ctx)
	totals, targets, err := s.collect(ctx, users, q.Period, start, end, cfg)
	if err != nil {
		return nil, err
	}
	elapsed, remaining := progress.PeriodDays(start, end, today)
	out := make(map[int64][]progress.MetricProgress, len(users))
	for _, u := range users {
		items := progress.Build(q.Period, totals[u.ID], targets[u.ID], cfg)
		out[u.ID] = progress.WithProjection(items, elapsed, remaining)
	}
	return out, nil
}

// collect loads the entries and explicit targets of all users in one pass
// and returns per-user totals and resolved targets.
func (s *ProgressService) collect(ctx context.Context, users []model.User, period progress.Period, start, end time.Time, cfg progress.Config) (map[int64]progress.Totals, map[int64]progress.Targets, error) {
	totals := make(map[int64]progress.Totals, len(users))
	targets := make(map[int64]progress.Targets, len(users))
	if len(users) == 0 {
		return totals, targets, nil
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var entries []model.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND entry_date >= ? AND entry_date <= ?", ids, model.NewDate(start), model.NewDate(end)).
		Find(&entries).Error
	if err != nil {
		return nil, nil, fmt.Errorf("query entries: %w", err)
	}
	byUser := map[int64][]model.DailyEntry{}
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	explicit, err := s.explicitTargets(ctx, ids, period, start)
	if err != nil {
		return nil, nil, err
	}

	for _, u := range users {
		totals[u.ID] = progress.Sum(byUser[u.ID])
		src := progress.TargetSource{Daily: u.PersonalTargets.Daily}
		var days int
		switch period {
		case progress.PeriodWeek:
			src.Explicit = []model.MetricValues{explicit[u.ID], u.PersonalTargets.Weekly}
			days = cfg.WorkingDaysPerWeek
		case progress.PeriodRange:
			days = progress.WorkingDays(start, end)
		default:
			src.Explicit = []model.MetricValues{explicit[u.ID], u.MonthlyTargets, u.PersonalTargets.Monthly}
			days = cfg.WorkingDaysPerMonth
		}
		targets[u.ID] = progress.ResolveTargets(src, days)
	}
	return totals, targets, nil
}

// explicitTargets loads the per-period snapshot rows: weekly goals for weeks
// and monthly planning for months.
func (s *ProgressService) explicitTargets(ctx context.Context, ids []int64, period progress.Period, start time.Time) (map[int64]model.MetricValues, error) {
	out := map[int64]model.MetricValues{}
	switch period {
	case progress.PeriodWeek:
		var rows []model.WeeklyGoal
		if err := s.db.WithContext(ctx).Where("user_id IN ? AND week_start = ?", ids, model.NewDate(start)).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("query weekly goals: %w", err)
		}
		for _, r := range rows {
			out[r.UserID] = r.Goals
		}
	case progress.PeriodMonth, "":
		var rows []model.MonthlyPlanning
		if err := s.db.WithContext(ctx).Where("user_id IN ? AND month_start = ?", ids, model.NewDate(start)).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("query monthly planning: %w", err)
		}
		for _, r := range rows {
			out[r.UserID] = r.Targets
		}
	}
	return out, nil
}
