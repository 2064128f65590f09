// Package service holds the business operations behind the HTTP API. Every
// method takes a context and returns sentinel-wrapped errors that the
// handlers map onto status codes.
package service

import (
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"gorm.io/gorm"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   int64
	Role model.Role
}

func (a Actor) IsAdmin() bool  { return a.Role == model.RoleAdmin }
func (a Actor) IsLeader() bool { return a.Role.IsLeader() }

// Services bundles every service sharing one database handle.
type Services struct {
	Auth            *AuthService
	Users           *UserService
	Teams           *TeamService
	Daily           *DailyService
	Goals           *GoalService
	Progress        *ProgressService
	Settings        *SettingsService
	Events          *EventService
	Bookings        *BookingService
	Questions       *QuestionService
	Recommendations *RecommendationService
	Push            *PushService
	Consents        *ConsentService
	Import          *ImportService
	Export          *ExportService
}

func New(db *gorm.DB, cfg progress.Config) *Services {
	settings := NewSettingsService(db, cfg)
	prog := NewProgressService(db, settings)
	daily := NewDailyService(db)
	return &Services{
		Auth:            NewAuthService(db),
		Users:           NewUserService(db, prog),
		Teams:           NewTeamService(db),
		Daily:           daily,
		Goals:           NewGoalService(db),
		Progress:        prog,
		Settings:        settings,
		Events:          NewEventService(db),
		Bookings:        NewBookingService(db),
		Questions:       NewQuestionService(db),
		Recommendations: NewRecommendationService(daily),
		Push:            NewPushService(db),
		Consents:        NewConsentService(db),
		Import:          NewImportService(db, daily),
		Export:          NewExportService(db, prog),
	}
}

// SetCatalogSync enables analytics sync for daily entry writes.
func (s *Services) SetCatalogSync(cs *CatalogSync) {
	s.Daily.SetCatalogSync(cs)
}
