package service

import (
	"strings"
	"testing"
	"time"

	"leadership-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDailyEntriesCSV(t *testing.T) {
	got := dailyEntriesCSV([]model.DailyEntry{{
		ID: 7, UserID: 3, EntryDate: "2026-10-13", FA: 2, EH: 150, BAVChecks: 1,
		UpdatedAt: time.Date(2026, 10, 13, 18, 5, 0, 0, time.UTC),
	}})
	assert.Equal(t, "7,3,2026-10-13,2,150,0,0,0,0,0,1,2026-10-13 18:05:00\n", got)
	assert.Len(t, strings.Split(strings.TrimSpace(got), ","), len(dailyEntryColumns))
}

func TestUsersCSV(t *testing.T) {
	got := usersCSV([]model.User{
		{ID: 1, Email: "a@example.com", Name: `Berger, "Anna"`, Role: model.RoleAdvisor, TeamID: ptr(int64(4))},
	})
	assert.Equal(t, "1,a@example.com,\"Berger, \"\"Anna\"\"\",advisor,4,\n", got)
}

func TestMapping(t *testing.T) {
	m := mapping([]string{"id", "name"})
	if assert.Len(t, m, 2) {
		assert.Equal(t, "name", m[1].TableColumn)
		assert.EqualValues(t, 2, m[1].ColNumInFile)
	}
}
