package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/sanitize"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var dailyUpsertColumns = []string{
	"fa", "eh", "new_appointments", "recommendations", "tiv_invitations",
	"taa_invitations", "tgs_registrations", "bav_checks",
	"reflection_yesterday", "reflection_today", "trainee_answer", "today_goals",
	"updated_at",
}

type DailyService struct {
	db      *gorm.DB
	catalog *CatalogSync
}

func NewDailyService(db *gorm.DB) *DailyService { return &DailyService{db: db} }

func (s *DailyService) SetCatalogSync(cs *CatalogSync) { s.catalog = cs }

// Upsert stores the daily form of one user for one date. A second submit for
// the same date replaces the first.
func (s *DailyService) Upsert(ctx context.Context, userID int64, date model.Date, req model.DailyEntryRequest) (*model.DailyEntry, error) {
	if date.IsZero() {
		return nil, invalid("entry date is required")
	}
	if m, neg := req.TodayGoals.Negative(); neg {
		return nil, invalid("today's goal for %s must not be negative", m)
	}
	e := model.DailyEntry{
		UserID:              userID,
		EntryDate:           date,
		FA:                  req.FA,
		EH:                  req.EH,
		NewAppointments:     req.NewAppointments,
		Recommendations:     req.Recommendations,
		TIVInvitations:      req.TIVInvitations,
		TAAInvitations:      req.TAAInvitations,
		TGSRegistrations:    req.TGSRegistrations,
		BAVChecks:           req.BAVChecks,
		ReflectionYesterday: sanitize.Text(req.ReflectionYesterday),
		ReflectionToday:     sanitize.Text(req.ReflectionToday),
		TraineeAnswer:       sanitize.Text(req.TraineeAnswer),
		TodayGoals:          req.TodayGoals,
	}
	for _, m := range model.AllMetrics {
		if e.Value(m) < 0 {
			return nil, invalid("%s must not be negative", m)
		}
	}
	saved, err := s.save(ctx, s.db, e, dailyUpsertColumns)
	if err != nil {
		return nil, err
	}
	logger.Info("daily.upsert", "uid", userID, "date", date)
	s.sync([]model.DailyEntry{*saved})
	return saved, nil
}

// save inserts e or, when the (user, date) row exists, overwrites columns.
func (s *DailyService) save(ctx context.Context, db *gorm.DB, e model.DailyEntry, columns []string) (*model.DailyEntry, error) {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&e).Error
	if err != nil {
		return nil, fmt.Errorf("upsert daily entry: %w", err)
	}
	var saved model.DailyEntry
	if err := db.WithContext(ctx).Where("user_id = ? AND entry_date = ?", e.UserID, e.EntryDate).First(&saved).Error; err != nil {
		return nil, notFound("daily entry", err)
	}
	return &saved, nil
}

func (s *DailyService) Get(ctx context.Context, userID int64, date model.Date) (*model.DailyEntry, error) {
	var e model.DailyEntry
	if err := s.db.WithContext(ctx).Where("user_id = ? AND entry_date = ?", userID, date).First(&e).Error; err != nil {
		return nil, notFound("daily entry", err)
	}
	return &e, nil
}

// List returns the entries of a user in [from, to], oldest first.
func (s *DailyService) List(ctx context.Context, userID int64, from, to model.Date) ([]model.DailyEntry, error) {
	if from.IsZero() || to.IsZero() {
		return nil, invalid("from and to are required")
	}
	if to < from {
		return nil, invalid("from %s is after to %s", from, to)
	}
	var entries []model.DailyEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Order("entry_date").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list daily entries: %w", err)
	}
	return entries, nil
}

// Trailing returns all entries of a user in the days-long window ending on
// today.
func (s *DailyService) Trailing(ctx context.Context, userID int64, today time.Time, days int) ([]model.DailyEntry, error) {
	from := model.NewDate(today.AddDate(0, 0, -(days - 1)))
	return s.List(ctx, userID, from, model.NewDate(today))
}

func (s *DailyService) sync(entries []model.DailyEntry) {
	if s.catalog == nil || len(entries) == 0 {
		return
	}
	go s.catalog.SyncDailyEntries(context.Background(), entries)
}
