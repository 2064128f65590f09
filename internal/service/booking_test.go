package service

import (
	"sync"
	"testing"

	"leadership-dashboard/internal/metrics"
	"leadership-dashboard/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedThursdayEvent creates a weekly Thursday event anchored on 2026-10-01.
func seedThursdayEvent(t *testing.T, svc *Services, by model.User) *model.Event {
	t.Helper()
	e, err := svc.Events.Create(ctx, actorOf(by), model.EventRequest{
		Title:          "Teamabend",
		EventDate:      "2026-10-01",
		StartTime:      "19:00",
		IsRecurring:    true,
		RecurrenceDays: []int{4},
	})
	require.NoError(t, err)
	return e
}

func seedSpeaker(t *testing.T, svc *Services, name string) *model.Speaker {
	t.Helper()
	sp, err := svc.Bookings.CreateSpeaker(ctx, model.SpeakerRequest{Name: name})
	require.NoError(t, err)
	return sp
}

func TestBook(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	alice := seedSpeaker(t, svc, "Alice")
	bob := seedSpeaker(t, svc, "Bob")

	b, err := svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: alice.ID, EventDate: "2026-10-15"}, today)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	assert.Equal(t, admin.ID, b.BookedBy)

	before := testutil.ToFloat64(metrics.BookingConflicts)
	_, err = svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: bob.ID, EventDate: "2026-10-15"}, today)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.BookingConflicts))

	_, err = svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: bob.ID, EventDate: "2026-10-22"}, today)
	assert.NoError(t, err, "other occurrence is free")
}

func TestBook_Rejects(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	sp := seedSpeaker(t, svc, "Alice")

	tests := []struct {
		name string
		req  model.BookingRequest
		want error
	}{
		{"not an occurrence", model.BookingRequest{EventID: ev.ID, SpeakerID: sp.ID, EventDate: "2026-10-16"}, ErrInvalidInput},
		{"past occurrence", model.BookingRequest{EventID: ev.ID, SpeakerID: sp.ID, EventDate: "2026-10-08"}, ErrInvalidInput},
		{"bad date", model.BookingRequest{EventID: ev.ID, SpeakerID: sp.ID, EventDate: "15.10.2026"}, ErrInvalidInput},
		{"unknown event", model.BookingRequest{EventID: 999, SpeakerID: sp.ID, EventDate: "2026-10-15"}, ErrNotFound},
		{"unknown speaker", model.BookingRequest{EventID: ev.ID, SpeakerID: 999, EventDate: "2026-10-15"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Bookings.Book(ctx, actorOf(admin), tt.req, today)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCancel_FreesSlot(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	alice := seedSpeaker(t, svc, "Alice")
	bob := seedSpeaker(t, svc, "Bob")
	req := model.BookingRequest{EventID: ev.ID, SpeakerID: alice.ID, EventDate: "2026-10-15"}

	b, err := svc.Bookings.Book(ctx, actorOf(admin), req, today)
	require.NoError(t, err)

	cancelled, err := svc.Bookings.Cancel(ctx, actorOf(admin), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, cancelled.Status)
	assert.Nil(t, cancelled.ConfirmedSlot)

	again, err := svc.Bookings.Cancel(ctx, actorOf(admin), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, again.Status)

	req.SpeakerID = bob.ID
	_, err = svc.Bookings.Book(ctx, actorOf(admin), req, today)
	require.NoError(t, err)

	all, err := svc.Bookings.List(ctx, BookingFilter{EventID: ev.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	confirmed, err := svc.Bookings.List(ctx, BookingFilter{EventID: ev.ID, Status: model.BookingConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, bob.ID, confirmed[0].SpeakerID)

	_, err = svc.Bookings.Cancel(ctx, actorOf(admin), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBook_ConcurrentSingleWinner(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)

	const n = 8
	speakers := make([]*model.Speaker, n)
	for i := range speakers {
		speakers[i] = seedSpeaker(t, svc, string(rune('A'+i)))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{
				EventID: ev.ID, SpeakerID: speakers[i].ID, EventDate: "2026-10-29",
			}, today)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, ok)

	var count int64
	require.NoError(t, db.Model(&model.SpeakerBooking{}).Where("status = ?", model.BookingConfirmed).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUniqueSlotIndexRejectsSecondConfirmed(t *testing.T) {
	db := setupTestDB(t)
	slot := "1:2026-10-15"
	first := model.SpeakerBooking{EventID: 1, SpeakerID: 1, EventDate: "2026-10-15", Status: model.BookingConfirmed, ConfirmedSlot: &slot}
	require.NoError(t, db.Create(&first).Error)

	second := model.SpeakerBooking{EventID: 1, SpeakerID: 2, EventDate: "2026-10-15", Status: model.BookingConfirmed, ConfirmedSlot: &slot}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.True(t, isDuplicate(err))

	cancelled := model.SpeakerBooking{EventID: 1, SpeakerID: 3, EventDate: "2026-10-15", Status: model.BookingCancelled}
	other := cancelled
	assert.NoError(t, db.Create(&cancelled).Error)
	assert.NoError(t, db.Create(&other).Error, "cancelled rows do not hold the slot")
}

func TestDeleteSpeaker(t *testing.T) {
	db, svc := setupServices(t)
	admin := seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	ev := seedThursdayEvent(t, svc, admin)
	sp := seedSpeaker(t, svc, "Alice")
	b, err := svc.Bookings.Book(ctx, actorOf(admin), model.BookingRequest{EventID: ev.ID, SpeakerID: sp.ID, EventDate: "2026-10-15"}, today)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Bookings.DeleteSpeaker(ctx, sp.ID), ErrConflict)

	_, err = svc.Bookings.Cancel(ctx, actorOf(admin), b.ID)
	require.NoError(t, err)
	assert.NoError(t, svc.Bookings.DeleteSpeaker(ctx, sp.ID))
	assert.ErrorIs(t, svc.Bookings.DeleteSpeaker(ctx, sp.ID), ErrNotFound)
}

func TestUpdateSpeaker(t *testing.T) {
	_, svc := setupServices(t)
	sp := seedSpeaker(t, svc, "Alice")

	up, err := svc.Bookings.UpdateSpeaker(ctx, sp.ID, model.SpeakerRequest{Name: "Alice M.", Email: "Alice@Example.com", Bio: "<p>Coach</p>"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", up.Email)
	assert.Equal(t, "Coach", up.Bio)

	list, err := svc.Bookings.ListSpeakers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice M.", list[0].Name)
}
