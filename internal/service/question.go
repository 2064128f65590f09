package service

import (
	"context"
	"fmt"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/sanitize"
	"leadership-dashboard/internal/weekday"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionService struct{ db *gorm.DB }

func NewQuestionService(db *gorm.DB) *QuestionService { return &QuestionService{db: db} }

// For returns the prompts of a weekday. When the stored row cannot be read
// the built-in table is served instead and flagged as fallback.
func (s *QuestionService) For(ctx context.Context, day int, trainee bool) (weekday.Questions, error) {
	if !weekday.Valid(day) {
		return weekday.Questions{}, invalid("weekday %d out of range 1-5", day)
	}
	var row model.WeekdayQuestion
	if err := s.db.WithContext(ctx).Where("weekday = ?", day).First(&row).Error; err != nil {
		logger.Warn("questions.fallback", "weekday", day, "err", err)
		return weekday.Prompts(day, trainee, nil)
	}
	return weekday.Prompts(day, trainee, &weekday.Questions{
		YesterdayPrompt: row.YesterdayPrompt,
		TodayPrompts:    row.TodayPrompts,
		TraineePrompt:   row.TraineePrompt,
	})
}

func (s *QuestionService) Upsert(ctx context.Context, day int, req model.QuestionRequest) (weekday.Questions, error) {
	if !weekday.Valid(day) {
		return weekday.Questions{}, invalid("weekday %d out of range 1-5", day)
	}
	prompts := sanitize.Strings(req.TodayPrompts)
	if len(prompts) == 0 {
		return weekday.Questions{}, invalid("at least one today prompt is required")
	}
	row := model.WeekdayQuestion{
		Weekday:         day,
		YesterdayPrompt: sanitize.Text(req.YesterdayPrompt),
		TodayPrompts:    prompts,
		TraineePrompt:   sanitize.Text(req.TraineePrompt),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "weekday"}},
		DoUpdates: clause.AssignmentColumns([]string{"yesterday_prompt", "today_prompts", "trainee_prompt", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return weekday.Questions{}, fmt.Errorf("save questions: %w", err)
	}
	logger.Info("questions.update", "weekday", day)
	return s.For(ctx, day, true)
}
