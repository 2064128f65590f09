package service

import (
	"context"
	"fmt"

	"leadership-dashboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushService stores web push subscriptions. Delivery is out of scope; the
// rows are kept for a future sender.
type PushService struct{ db *gorm.DB }

func NewPushService(db *gorm.DB) *PushService { return &PushService{db: db} }

// Subscribe registers an endpoint for a user. A browser re-subscribing with
// the same endpoint moves it to the current user and refreshes the keys.
func (s *PushService) Subscribe(ctx context.Context, userID int64, req model.PushSubscriptionRequest) (*model.PushSubscription, error) {
	sub := model.PushSubscription{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}
	var saved model.PushSubscription
	if err := s.db.WithContext(ctx).Where("endpoint = ?", req.Endpoint).First(&saved).Error; err != nil {
		return nil, notFound("subscription", err)
	}
	return &saved, nil
}

func (s *PushService) List(ctx context.Context, userID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Unsubscribe removes one of the user's own endpoints.
func (s *PushService) Unsubscribe(ctx context.Context, userID int64, endpoint string) error {
	if endpoint == "" {
		return invalid("endpoint is required")
	}
	res := s.db.WithContext(ctx).Where("user_id = ? AND endpoint = ?", userID, endpoint).Delete(&model.PushSubscription{})
	if res.Error != nil {
		return fmt.Errorf("delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("subscription: %w", ErrNotFound)
	}
	return nil
}
