package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsentService struct{ db *gorm.DB }

func NewConsentService(db *gorm.DB) *ConsentService { return &ConsentService{db: db} }

// Record stores the latest decision of a user for one consent kind.
func (s *ConsentService) Record(ctx context.Context, userID int64, req model.ConsentRequest, now time.Time) (*model.Consent, error) {
	c := model.Consent{
		UserID:    userID,
		Kind:      req.Kind,
		Granted:   req.Granted,
		Version:   req.Version,
		GrantedAt: now.UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"granted", "version", "granted_at", "updated_at"}),
	}).Create(&c).Error
	if err != nil {
		return nil, fmt.Errorf("save consent: %w", err)
	}
	logger.Info("consent.record", "uid", userID, "kind", req.Kind, "granted", req.Granted)
	var saved model.Consent
	if err := s.db.WithContext(ctx).Where("user_id = ? AND kind = ?", userID, req.Kind).First(&saved).Error; err != nil {
		return nil, notFound("consent", err)
	}
	return &saved, nil
}

func (s *ConsentService) List(ctx context.Context, userID int64) ([]model.Consent, error) {
	var out []model.Consent
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("kind").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list consents: %w", err)
	}
	return out, nil
}
