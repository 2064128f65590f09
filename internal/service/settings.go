package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const progressSettingKey = "progress"

// ProgressSettings is the admin-editable part of the progress rating.
type ProgressSettings struct {
	Thresholds map[model.Metric]progress.Threshold `json:"thresholds"`
}

// SettingsService stores admin settings. The static progress configuration
// is injected once; stored thresholds are merged into it on every read.
type SettingsService struct {
	db   *gorm.DB
	base progress.Config
}

func NewSettingsService(db *gorm.DB, base progress.Config) *SettingsService {
	return &SettingsService{db: db, base: base}
}

func (s *SettingsService) Progress(ctx context.Context) (ProgressSettings, error) {
	var row model.AdminSetting
	err := s.db.WithContext(ctx).Where("`key` = ?", progressSettingKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProgressSettings{Thresholds: map[model.Metric]progress.Threshold{}}, nil
	}
	if err != nil {
		return ProgressSettings{}, fmt.Errorf("query settings: %w", err)
	}
	var ps ProgressSettings
	if err := json.Unmarshal([]byte(row.Value), &ps); err != nil {
		return ProgressSettings{}, fmt.Errorf("decode settings: %w", err)
	}
	if ps.Thresholds == nil {
		ps.Thresholds = map[model.Metric]progress.Threshold{}
	}
	return ps, nil
}

func (s *SettingsService) SetProgress(ctx context.Context, ps ProgressSettings) (ProgressSettings, error) {
	for m, t := range ps.Thresholds {
		if !m.Valid() {
			return ProgressSettings{}, invalid("unknown metric %q", m)
		}
		if err := t.Validate(); err != nil {
			return ProgressSettings{}, invalid("%s: %v", m, err)
		}
	}
	if ps.Thresholds == nil {
		ps.Thresholds = map[model.Metric]progress.Threshold{}
	}
	data, err := json.Marshal(ps)
	if err != nil {
		return ProgressSettings{}, fmt.Errorf("encode settings: %w", err)
	}
	row := model.AdminSetting{Key: progressSettingKey, Value: string(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return ProgressSettings{}, fmt.Errorf("save settings: %w", err)
	}
	logger.Info("settings.progress", "thresholds", len(ps.Thresholds))
	return ps, nil
}

// Config returns the effective progress configuration. When stored
// thresholds cannot be read the static configuration is used.
func (s *SettingsService) Config(ctx context.Context) progress.Config {
	ps, err := s.Progress(ctx)
	if err != nil {
		logger.Warn("settings.progress.fallback", "err", err)
		return s.base
	}
	return s.base.WithThresholds(ps.Thresholds)
}
