package service

import (
	"context"
	"testing"
	"time"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2026-10-14 is a Wednesday.
var today = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

var ctx = context.Background()

// setupTestDB opens a private in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func setupServices(t *testing.T) (*gorm.DB, *Services) {
	db := setupTestDB(t)
	return db, New(db, progress.DefaultConfig())
}

func ptr[T any](v T) *T { return &v }

// seedUser inserts an active user with password "secret123".
func seedUser(t *testing.T, db *gorm.DB, email string, role model.Role, leader *int64) model.User {
	t.Helper()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	u := model.User{
		Email:          email,
		PasswordHash:   hash,
		Name:           email,
		Role:           role,
		ParentLeaderID: leader,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedEntry(t *testing.T, db *gorm.DB, userID int64, date string, fill func(e *model.DailyEntry)) {
	t.Helper()
	e := model.DailyEntry{UserID: userID, EntryDate: model.Date(date)}
	if fill != nil {
		fill(&e)
	}
	require.NoError(t, db.Create(&e).Error)
}

func actorOf(u model.User) Actor { return Actor{ID: u.ID, Role: u.Role} }

// org is a small reporting tree:
//
//	top (top_leader)
//	└── sub (sub_leader)
//	    ├── a (advisor)
//	    └── b (advisor)
//	other (advisor, no leader)
type org struct {
	admin, top, sub, a, b, other model.User
}

func seedOrg(t *testing.T, db *gorm.DB) org {
	t.Helper()
	var o org
	o.admin = seedUser(t, db, "admin@example.com", model.RoleAdmin, nil)
	o.top = seedUser(t, db, "top@example.com", model.RoleTopLeader, nil)
	o.sub = seedUser(t, db, "sub@example.com", model.RoleSubLeader, &o.top.ID)
	o.a = seedUser(t, db, "a@example.com", model.RoleAdvisor, &o.sub.ID)
	o.b = seedUser(t, db, "b@example.com", model.RoleAdvisor, &o.sub.ID)
	o.other = seedUser(t, db, "other@example.com", model.RoleAdvisor, nil)
	return o
}
