package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/metrics"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/sanitize"

	"gorm.io/gorm"
)

// BookingService manages speakers and their bookings onto event
// occurrences. At most one confirmed booking exists per (event, date); the
// unique confirmed_slot column enforces it under concurrent requests.
type BookingService struct{ db *gorm.DB }

func NewBookingService(db *gorm.DB) *BookingService { return &BookingService{db: db} }

func slotKey(eventID int64, date model.Date) string {
	return fmt.Sprintf("%d:%s", eventID, date)
}

func (s *BookingService) ListSpeakers(ctx context.Context) ([]model.Speaker, error) {
	var speakers []model.Speaker
	if err := s.db.WithContext(ctx).Order("name, id").Find(&speakers).Error; err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	return speakers, nil
}

func (s *BookingService) CreateSpeaker(ctx context.Context, req model.SpeakerRequest) (*model.Speaker, error) {
	sp := model.Speaker{
		Name:   req.Name,
		Email:  normalizeEmail(req.Email),
		Bio:    sanitize.Text(req.Bio),
		UserID: req.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&sp).Error; err != nil {
		return nil, fmt.Errorf("insert speaker: %w", err)
	}
	return &sp, nil
}

func (s *BookingService) UpdateSpeaker(ctx context.Context, id int64, req model.SpeakerRequest) (*model.Speaker, error) {
	var sp model.Speaker
	if err := s.db.WithContext(ctx).First(&sp, id).Error; err != nil {
		return nil, notFound("speaker", err)
	}
	sp.Name = req.Name
	sp.Email = normalizeEmail(req.Email)
	sp.Bio = sanitize.Text(req.Bio)
	sp.UserID = req.UserID
	if err := s.db.WithContext(ctx).Save(&sp).Error; err != nil {
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return &sp, nil
}

// DeleteSpeaker refuses to remove a speaker that still holds confirmed
// bookings.
func (s *BookingService) DeleteSpeaker(ctx context.Context, id int64) error {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.SpeakerBooking{}).
		Where("speaker_id = ? AND status = ?", id, model.BookingConfirmed).Count(&n).Error
	if err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if n > 0 {
		return conflict("speaker %d has %d confirmed bookings", id, n)
	}
	res := s.db.WithContext(ctx).Delete(&model.Speaker{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete speaker: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("speaker %d: %w", id, ErrNotFound)
	}
	return nil
}

// BookingFilter narrows List. Zero values match everything.
type BookingFilter struct {
	EventID   int64
	SpeakerID int64
	From      model.Date
	To        model.Date
	Status    model.BookingStatus
}

func (s *BookingService) List(ctx context.Context, f BookingFilter) ([]model.SpeakerBooking, error) {
	q := s.db.WithContext(ctx).Order("event_date, id")
	if f.EventID != 0 {
		q = q.Where("event_id = ?", f.EventID)
	}
	if f.SpeakerID != 0 {
		q = q.Where("speaker_id = ?", f.SpeakerID)
	}
	if !f.From.IsZero() {
		q = q.Where("event_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("event_date <= ?", f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []model.SpeakerBooking
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// Book confirms a speaker for one occurrence of an event. The date must be
// an occurrence of the event and not lie in the past. A second confirmed
// booking for the same occurrence fails with ErrConflict.
func (s *BookingService) Book(ctx context.Context, actor Actor, req model.BookingRequest, today time.Time) (*model.SpeakerBooking, error) {
	date, err := model.ParseDate(string(req.EventDate))
	if err != nil {
		return nil, invalid("event_date: %v", err)
	}
	var event model.Event
	if err := s.db.WithContext(ctx).First(&event, req.EventID).Error; err != nil {
		return nil, notFound("event", err)
	}
	var speaker model.Speaker
	if err := s.db.WithContext(ctx).First(&speaker, req.SpeakerID).Error; err != nil {
		return nil, notFound("speaker", err)
	}
	if date < model.NewDate(today) {
		return nil, invalid("%s is in the past", date)
	}
	if !Occurs(event, date) {
		return nil, invalid("event %d does not take place on %s", event.ID, date)
	}

	key := slotKey(event.ID, date)
	var taken int64
	if err := s.db.WithContext(ctx).Model(&model.SpeakerBooking{}).Where("confirmed_slot = ?", key).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken > 0 {
		return nil, s.slotTaken(event.ID, date)
	}

	b := model.SpeakerBooking{
		EventID:       event.ID,
		SpeakerID:     speaker.ID,
		EventDate:     date,
		Status:        model.BookingConfirmed,
		ConfirmedSlot: &key,
		BookedBy:      actor.ID,
		Notes:         sanitize.Text(req.Notes),
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		if isDuplicate(err) {
			return nil, s.slotTaken(event.ID, date)
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	logger.Info("booking.confirm", "id", b.ID, "event", event.ID, "date", date, "speaker", speaker.ID, "by", actor.ID)
	return &b, nil
}

func (s *BookingService) slotTaken(eventID int64, date model.Date) error {
	metrics.BookingConflicts.Inc()
	logger.Warn("booking.conflict", "event", eventID, "date", date)
	return conflict("event %d on %s is already booked", eventID, date)
}

// Cancel releases a booking's slot. Cancelling twice is a no-op.
func (s *BookingService) Cancel(ctx context.Context, actor Actor, id int64) (*model.SpeakerBooking, error) {
	var b model.SpeakerBooking
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound("booking", err)
	}
	if b.Status == model.BookingCancelled {
		return &b, nil
	}
	err := s.db.WithContext(ctx).Model(&b).Updates(map[string]any{
		"status":         model.BookingCancelled,
		"confirmed_slot": nil,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	logger.Info("booking.cancel", "id", id, "by", actor.ID)
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound("booking", err)
	}
	return &b, nil
}
