package service

import (
	"context"
	"time"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"
	"leadership-dashboard/internal/weekday"
)

// Recommendations is the answer for one user.
type Recommendations struct {
	From            model.Date               `json:"from"`
	To              model.Date               `json:"to"`
	Averages        weekday.Averages         `json:"averages"`
	Recommendations []weekday.Recommendation `json:"recommendations"`
}

type RecommendationService struct{ daily *DailyService }

func NewRecommendationService(daily *DailyService) *RecommendationService {
	return &RecommendationService{daily: daily}
}

// For rates the trailing 30 days of a user ending today.
func (s *RecommendationService) For(ctx context.Context, userID int64, today time.Time) (*Recommendations, error) {
	today = progress.Day(today)
	entries, err := s.daily.Trailing(ctx, userID, today, weekday.Window)
	if err != nil {
		return nil, err
	}
	avg := weekday.AveragesFromTotals(progress.Sum(entries), weekday.Window)
	return &Recommendations{
		From:            model.NewDate(today.AddDate(0, 0, -(weekday.Window - 1))),
		To:              model.NewDate(today),
		Averages:        avg,
		Recommendations: weekday.Recommend(avg),
	}, nil
}
