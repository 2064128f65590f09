package service

import (
	"testing"

	"leadership-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreate_Defaults(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)

	e, err := svc.Events.Create(ctx, actorOf(admin), model.EventRequest{Title: "Kickoff", EventDate: "2026-10-20", IsRecurring: true})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, e.RecurrenceDays)
	assert.Equal(t, 1, e.RecurrenceInterval)
	assert.Equal(t, admin.ID, e.CreatedBy)

	one, err := svc.Events.Create(ctx, actorOf(admin), model.EventRequest{Title: "TGS", EventDate: "2026-10-20", RecurrenceDays: []int{2}})
	require.NoError(t, err)
	assert.Empty(t, one.RecurrenceDays, "one-off events carry no days")

	tests := []struct {
		name string
		req  model.EventRequest
	}{
		{"bad date", model.EventRequest{Title: "x", EventDate: "20.10.2026"}},
		{"end before start", model.EventRequest{Title: "x", EventDate: "2026-10-20", IsRecurring: true, RecurrenceEndDate: "2026-10-01"}},
		{"day out of range", model.EventRequest{Title: "x", EventDate: "2026-10-20", IsRecurring: true, RecurrenceDays: []int{8}}},
		{"unknown topic", model.EventRequest{Title: "x", EventDate: "2026-10-20", TopicID: ptr(int64(42))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Events.Create(ctx, actorOf(admin), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestOccurs(t *testing.T) {
	oneOff := model.Event{EventDate: "2026-10-20"}
	assert.True(t, Occurs(oneOff, "2026-10-20"))
	assert.False(t, Occurs(oneOff, "2026-10-27"))

	biweekly := model.Event{EventDate: "2026-10-01", IsRecurring: true, RecurrenceDays: []int{4}, RecurrenceInterval: 2, RecurrenceEndDate: "2026-11-30"}
	assert.True(t, Occurs(biweekly, "2026-10-15"))
	assert.False(t, Occurs(biweekly, "2026-10-22"))
	assert.True(t, Occurs(biweekly, "2026-11-26"))
	assert.False(t, Occurs(biweekly, "2026-12-10"))
	assert.False(t, Occurs(biweekly, "2026-09-17"))
}

func TestSlots_MarksBooked(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	sp := seedSpeaker(t, svc, "Alice")
	_, err := svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: sp.ID, EventDate: "2026-10-22"}, today)
	require.NoError(t, err)

	slots, err := svc.Events.Slots(ctx, ev.ID, today)
	require.NoError(t, err)
	require.Len(t, slots, 12)
	assert.Equal(t, model.Date("2026-10-15"), slots[0].Date)
	assert.False(t, slots[0].Booked)
	assert.Nil(t, slots[0].Booking)
	assert.Equal(t, model.Date("2026-10-22"), slots[1].Date)
	require.True(t, slots[1].Booked)
	assert.Equal(t, "Alice", slots[1].Booking.SpeakerName)
}

func TestSlots_OneOff(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)

	past, err := svc.Events.Create(ctx, actorOf(admin), model.EventRequest{Title: "Alt", EventDate: "2026-10-01"})
	require.NoError(t, err)
	slots, err := svc.Events.Slots(ctx, past.ID, today)
	require.NoError(t, err)
	assert.Empty(t, slots)

	next, err := svc.Events.Create(ctx, actorOf(admin), model.EventRequest{Title: "Neu", EventDate: "2026-10-14"})
	require.NoError(t, err)
	slots, err = svc.Events.Slots(ctx, next.ID, today)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, model.Date("2026-10-14"), slots[0].Date)

	_, err = svc.Events.Slots(ctx, 999, today)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventDelete_RemovesBookings(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	sp := seedSpeaker(t, svc, "Alice")
	_, err := svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: sp.ID, EventDate: "2026-10-15"}, today)
	require.NoError(t, err)

	require.NoError(t, svc.Events.Delete(ctx, ev.ID))
	var n int64
	require.NoError(t, db.Model(&model.SpeakerBooking{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.ErrorIs(t, svc.Events.Delete(ctx, ev.ID), ErrNotFound)
}

func TestEventUpdate(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)

	up, err := svc.Events.Update(ctx, ev.ID, model.EventRequest{
		Title: "Teamabend neu", EventDate: "2026-10-01", IsRecurring: true, RecurrenceDays: []int{2, 4}, RecurrenceInterval: 1,
	}, today)
	require.NoError(t, err)
	assert.Equal(t, "Teamabend neu", up.Title)
	assert.Equal(t, []int{2, 4}, up.RecurrenceDays)
	assert.Equal(t, admin.ID, up.CreatedBy)

	_, err = svc.Events.Update(ctx, 999, model.EventRequest{Title: "x", EventDate: "2026-10-01"}, today)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventUpdate_KeepsBookingsOnSchedule(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	alice := seedSpeaker(t, svc, "Alice")

	b, err := svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: alice.ID, EventDate: "2026-10-22"}, today)
	require.NoError(t, err)
	pastKey := slotKey(ev.ID, "2026-10-08")
	require.NoError(t, db.Create(&model.SpeakerBooking{
		EventID: ev.ID, SpeakerID: alice.ID, EventDate: "2026-10-08",
		Status: model.BookingConfirmed, ConfirmedSlot: &pastKey, BookedBy: admin.ID,
	}).Error)

	tuesdays := model.EventRequest{Title: "Teamabend", EventDate: "2026-10-01", IsRecurring: true, RecurrenceDays: []int{2}}
	_, err = svc.Events.Update(ctx, ev.ID, tuesdays, today)
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "2026-10-22")
	assert.NotContains(t, err.Error(), "2026-10-08")

	got, err := svc.Events.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, got.RecurrenceDays, "rejected update leaves the event alone")

	biweekly := model.EventRequest{Title: "Teamabend", EventDate: "2026-10-01", IsRecurring: true, RecurrenceDays: []int{4}, RecurrenceInterval: 2}
	_, err = svc.Events.Update(ctx, ev.ID, biweekly, today)
	assert.ErrorIs(t, err, ErrConflict, "10-22 is an off week")

	_, err = svc.Bookings.Cancel(ctx, actorOf(admin), b.ID)
	require.NoError(t, err)
	up, err := svc.Events.Update(ctx, ev.ID, tuesdays, today)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, up.RecurrenceDays)
}

func TestTopics(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)

	topic, err := svc.Events.CreateTopic(ctx, model.TopicRequest{Name: "Vertrieb"})
	require.NoError(t, err)
	_, err = svc.Events.CreateTopic(ctx, model.TopicRequest{Name: "Vertrieb"})
	assert.ErrorIs(t, err, ErrConflict)

	ev, err := svc.Events.Create(ctx, actorOf(admin), model.EventRequest{Title: "x", EventDate: "2026-10-20", TopicID: &topic.ID})
	require.NoError(t, err)

	up, err := svc.Events.UpdateTopic(ctx, topic.ID, model.TopicRequest{Name: "Vertrieb & Service", Description: "<b>neu</b>"})
	require.NoError(t, err)
	assert.Equal(t, "neu", up.Description)

	require.NoError(t, svc.Events.DeleteTopic(ctx, topic.ID))
	got, err := svc.Events.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TopicID)

	topics, err := svc.Events.ListTopics(ctx)
	require.NoError(t, err)
	assert.Empty(t, topics)
}
