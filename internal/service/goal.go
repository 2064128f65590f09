package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"
	"leadership-dashboard/internal/sanitize"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func prefixed(prefix string) []string {
	out := make([]string, 0, len(model.AllMetrics)+1)
	for _, m := range model.AllMetrics {
		out = append(out, prefix+string(m))
	}
	return append(out, "updated_at")
}

var (
	weeklyUpsertColumns  = prefixed("goal_")
	monthlyUpsertColumns = append(prefixed("target_"), "notes")
)

// GoalService keeps per-period target snapshots: weekly goals keyed by the
// Monday of the week and monthly planning keyed by the first of the month.
type GoalService struct{ db *gorm.DB }

func NewGoalService(db *gorm.DB) *GoalService { return &GoalService{db: db} }

func (s *GoalService) UpsertWeekly(ctx context.Context, userID int64, day time.Time, goals model.MetricValues) (*model.WeeklyGoal, error) {
	if m, neg := goals.Negative(); neg {
		return nil, invalid("weekly goal for %s must not be negative", m)
	}
	start, _ := progress.WeekRange(day)
	g := model.WeeklyGoal{UserID: userID, WeekStart: model.NewDate(start), Goals: goals}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.AssignmentColumns(weeklyUpsertColumns),
	}).Create(&g).Error
	if err != nil {
		return nil, fmt.Errorf("upsert weekly goal: %w", err)
	}
	logger.Info("goals.weekly", "uid", userID, "week", g.WeekStart)
	return s.Weekly(ctx, userID, start)
}

func (s *GoalService) Weekly(ctx context.Context, userID int64, day time.Time) (*model.WeeklyGoal, error) {
	start, _ := progress.WeekRange(day)
	var g model.WeeklyGoal
	if err := s.db.WithContext(ctx).Where("user_id = ? AND week_start = ?", userID, model.NewDate(start)).First(&g).Error; err != nil {
		return nil, notFound("weekly goal", err)
	}
	return &g, nil
}

func (s *GoalService) UpsertMonthly(ctx context.Context, userID int64, day time.Time, req model.PlanningRequest) (*model.MonthlyPlanning, error) {
	if m, neg := req.Targets.Negative(); neg {
		return nil, invalid("monthly target for %s must not be negative", m)
	}
	start, _ := progress.MonthRange(day)
	p := model.MonthlyPlanning{
		UserID:     userID,
		MonthStart: model.NewDate(start),
		Targets:    req.Targets,
		Notes:      sanitize.Text(req.Notes),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month_start"}},
		DoUpdates: clause.AssignmentColumns(monthlyUpsertColumns),
	}).Create(&p).Error
	if err != nil {
		return nil, fmt.Errorf("upsert monthly planning: %w", err)
	}
	logger.Info("goals.monthly", "uid", userID, "month", p.MonthStart)
	return s.Monthly(ctx, userID, start)
}

func (s *GoalService) Monthly(ctx context.Context, userID int64, day time.Time) (*model.MonthlyPlanning, error) {
	start, _ := progress.MonthRange(day)
	var p model.MonthlyPlanning
	if err := s.db.WithContext(ctx).Where("user_id = ? AND month_start = ?", userID, model.NewDate(start)).First(&p).Error; err != nil {
		return nil, notFound("monthly planning", err)
	}
	return &p, nil
}
