package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/sanitize"
	"leadership-dashboard/internal/schedule"

	"gorm.io/gorm"
)

type EventService struct{ db *gorm.DB }

func NewEventService(db *gorm.DB) *EventService { return &EventService{db: db} }

func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := s.db.WithContext(ctx).Order("event_date, start_time, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFound("event", err)
	}
	return &e, nil
}

func (s *EventService) Create(ctx context.Context, actor Actor, req model.EventRequest) (*model.Event, error) {
	e, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	e.CreatedBy = actor.ID
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	logger.Info("event.create", "id", e.ID, "recurring", e.IsRecurring, "by", actor.ID)
	return &e, nil
}

// Update replaces an event. It fails with ErrConflict when a confirmed
// booking from today on would no longer fall on an occurrence; those have to
// be cancelled first.
func (s *EventService) Update(ctx context.Context, id int64, req model.EventRequest, today time.Time) (*model.Event, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := s.fromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	e.ID = existing.ID
	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booked []model.SpeakerBooking
		err := tx.Where("event_id = ? AND status = ? AND event_date >= ?", id, model.BookingConfirmed, model.NewDate(today)).
			Order("event_date").Find(&booked).Error
		if err != nil {
			return fmt.Errorf("query bookings: %w", err)
		}
		var stranded []string
		for _, b := range booked {
			if !Occurs(e, b.EventDate) {
				stranded = append(stranded, string(b.EventDate))
			}
		}
		if len(stranded) > 0 {
			return conflict("confirmed bookings on %s no longer match the schedule", strings.Join(stranded, ", "))
		}
		if err := tx.Save(&e).Error; err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("event.update", "id", id, "recurring", e.IsRecurring)
	return s.Get(ctx, id)
}

// Delete removes an event together with its bookings.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.SpeakerBooking{}).Error; err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		logger.Info("event.delete", "id", id)
		return nil
	})
}

func (s *EventService) fromRequest(ctx context.Context, req model.EventRequest) (model.Event, error) {
	if _, err := model.ParseDate(string(req.EventDate)); err != nil {
		return model.Event{}, invalid("event_date: %v", err)
	}
	if !req.RecurrenceEndDate.IsZero() {
		if _, err := model.ParseDate(string(req.RecurrenceEndDate)); err != nil {
			return model.Event{}, invalid("recurrence_end_date: %v", err)
		}
		if req.RecurrenceEndDate < req.EventDate {
			return model.Event{}, invalid("recurrence_end_date is before event_date")
		}
	}
	for _, d := range req.RecurrenceDays {
		if d < 1 || d > 7 {
			return model.Event{}, invalid("recurrence day %d out of range 1-7", d)
		}
	}
	if req.TopicID != nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&model.EventTopic{}).Where("id = ?", *req.TopicID).Count(&n).Error; err != nil {
			return model.Event{}, fmt.Errorf("check topic: %w", err)
		}
		if n == 0 {
			return model.Event{}, invalid("topic %d does not exist", *req.TopicID)
		}
	}
	e := model.Event{
		Title:              req.Title,
		TopicID:            req.TopicID,
		EventDate:          req.EventDate,
		StartTime:          req.StartTime,
		Location:           req.Location,
		IsRecurring:        req.IsRecurring,
		RecurrenceInterval: req.RecurrenceInterval,
	}
	if e.RecurrenceInterval < 1 {
		e.RecurrenceInterval = 1
	}
	if e.IsRecurring {
		e.RecurrenceDays = req.RecurrenceDays
		if len(e.RecurrenceDays) == 0 {
			e.RecurrenceDays = []int{1}
		}
		e.RecurrenceEndDate = req.RecurrenceEndDate
	}
	return e, nil
}

// Rule turns a recurring event into its recurrence rule.
func Rule(e model.Event) schedule.Rule {
	r := schedule.Rule{
		Anchor:   e.EventDate.Time(),
		Days:     e.RecurrenceDays,
		Interval: e.RecurrenceInterval,
	}
	if !e.RecurrenceEndDate.IsZero() {
		end := e.RecurrenceEndDate.Time()
		r.End = &end
	}
	return r
}

// Occurs reports whether date is a valid occurrence of e.
func Occurs(e model.Event, date model.Date) bool {
	if !e.IsRecurring {
		return date == e.EventDate
	}
	return schedule.Occurs(Rule(e), date.Time())
}

// Slot is one occurrence of an event and its booking state.
type Slot struct {
	Date    model.Date   `json:"date"`
	Booked  bool         `json:"booked"`
	Booking *SlotBooking `json:"booking,omitempty"`
}

type SlotBooking struct {
	ID          int64  `json:"id"`
	SpeakerID   int64  `json:"speaker_id"`
	SpeakerName string `json:"speaker_name"`
}

// Slots lists the upcoming occurrences of an event over the scheduling
// horizon, each marked with its confirmed booking if any.
func (s *EventService) Slots(ctx context.Context, id int64, today time.Time) ([]Slot, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var dates []model.Date
	if e.IsRecurring {
		for _, d := range schedule.Slots(Rule(*e), today, schedule.Horizon) {
			dates = append(dates, model.NewDate(d))
		}
	} else if e.EventDate >= model.NewDate(today) {
		dates = append(dates, e.EventDate)
	}
	if len(dates) == 0 {
		return []Slot{}, nil
	}

	type bookedRow struct {
		ID          int64
		SpeakerID   int64
		SpeakerName string
		EventDate   model.Date
	}
	var rows []bookedRow
	err = s.db.WithContext(ctx).Table("speaker_bookings AS b").
		Select("b.id, b.speaker_id, s.name AS speaker_name, b.event_date").
		Joins("LEFT JOIN speakers s ON s.id = b.speaker_id").
		Where("b.event_id = ? AND b.status = ? AND b.event_date IN ?", id, model.BookingConfirmed, dates).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	booked := make(map[model.Date]*SlotBooking, len(rows))
	for _, r := range rows {
		booked[r.EventDate] = &SlotBooking{ID: r.ID, SpeakerID: r.SpeakerID, SpeakerName: r.SpeakerName}
	}

	out := make([]Slot, 0, len(dates))
	for _, d := range dates {
		b := booked[d]
		out = append(out, Slot{Date: d, Booked: b != nil, Booking: b})
	}
	return out, nil
}

func (s *EventService) ListTopics(ctx context.Context) ([]model.EventTopic, error) {
	var topics []model.EventTopic
	if err := s.db.WithContext(ctx).Order("name").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

func (s *EventService) CreateTopic(ctx context.Context, req model.TopicRequest) (*model.EventTopic, error) {
	t := model.EventTopic{Name: req.Name, Description: sanitize.Text(req.Description)}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("topic %q already exists", t.Name)
		}
		return nil, fmt.Errorf("insert topic: %w", err)
	}
	return &t, nil
}

func (s *EventService) UpdateTopic(ctx context.Context, id int64, req model.TopicRequest) (*model.EventTopic, error) {
	var t model.EventTopic
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound("topic", err)
	}
	err := s.db.WithContext(ctx).Model(&t).Updates(map[string]any{
		"name":        req.Name,
		"description": sanitize.Text(req.Description),
	}).Error
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("topic %q already exists", req.Name)
		}
		return nil, fmt.Errorf("update topic: %w", err)
	}
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound("topic", err)
	}
	return &t, nil
}

// DeleteTopic removes a topic; events that used it keep existing without one.
func (s *EventService) DeleteTopic(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Event{}).Where("topic_id = ?", id).Update("topic_id", nil).Error; err != nil {
			return fmt.Errorf("detach events: %w", err)
		}
		res := tx.Delete(&model.EventTopic{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete topic: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("topic %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
