package handler

import (
	"io/fs"
	"net/http"
	"time"

	"leadership-dashboard/internal/metrics"
	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	Services     *service.Services
	JWT          *middleware.JWT
	ExposeErrors bool
	CORSOrigins  []string
	BodyLimitMB  int
	// Static is served for every unmatched path; nil disables the UI.
	Static fs.FS
	Now    func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	middleware.SetupValidator()
	if d.Now == nil {
		d.Now = time.Now
	}
	b := base{expose: d.ExposeErrors, now: d.Now}
	svc := d.Services

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.AccessLog())
	corsCfg := cors.Config{
		AllowOrigins:  d.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-New-Token", "X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(d.CORSOrigins) == 0 {
		corsCfg.AllowOrigins, corsCfg.AllowAllOrigins = nil, true
	}
	r.Use(cors.New(corsCfg))
	if d.BodyLimitMB > 0 {
		r.Use(middleware.BodyLimit(d.BodyLimitMB))
	}

	health := &HealthHandler{db: d.DB}
	r.GET("/healthz", health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	authH := &AuthHandler{base: b, auth: svc.Auth, users: svc.Users, jwt: d.JWT}
	usersH := &UserHandler{base: b, users: svc.Users}
	teamsH := &TeamHandler{base: b, teams: svc.Teams}
	dailyH := &DailyHandler{base: b, daily: svc.Daily, goals: svc.Goals}
	progressH := &ProgressHandler{base: b, progress: svc.Progress, recommendations: svc.Recommendations}
	settingsH := &SettingsHandler{base: b, settings: svc.Settings, questions: svc.Questions}
	eventsH := &EventHandler{base: b, events: svc.Events}
	bookingsH := &BookingHandler{base: b, bookings: svc.Bookings}
	pushH := &PushHandler{base: b, push: svc.Push, consents: svc.Consents}
	importH := &ImportHandler{base: b, imports: svc.Import}
	exportH := &ExportHandler{base: b, export: svc.Export}

	pub := r.Group("/api")
	pub.POST("/login", authH.Login)
	pub.GET("/healthz", health.Health)

	admin := middleware.RequireRole(model.RoleAdmin)
	leaders := middleware.RequireRole(model.RoleAdmin, model.RoleTopLeader, model.RoleSubLeader)

	api := r.Group("/api", d.JWT.Auth(svc.Auth, d.ExposeErrors))
	api.GET("/me", authH.Me)
	api.PUT("/me/targets", authH.SetTargets)
	api.PUT("/me/monthly-targets", authH.SetMonthlyTargets)

	api.GET("/users", leaders, usersH.List)
	api.POST("/users", admin, usersH.Create)
	api.GET("/users/:id", leaders, usersH.Get)
	api.PUT("/users/:id", admin, usersH.Update)
	api.DELETE("/users/:id", admin, usersH.Delete)
	api.PUT("/users/:id/leader", middleware.RequireRole(model.RoleAdmin, model.RoleTopLeader), usersH.SetLeader)
	api.PUT("/users/:id/monthly-targets", leaders, usersH.SetMonthlyTargets)
	api.GET("/roster", leaders, usersH.Roster)

	api.GET("/teams", teamsH.List)
	api.GET("/teams/:id", teamsH.Get)
	api.POST("/teams", admin, teamsH.Create)
	api.PUT("/teams/:id", admin, teamsH.Update)
	api.DELETE("/teams/:id", admin, teamsH.Delete)

	api.GET("/daily-entries", dailyH.List)
	api.GET("/daily-entries/:date", dailyH.Get)
	api.PUT("/daily-entries/:date", dailyH.Put)
	api.GET("/weekly-goals/:week", dailyH.GetWeekly)
	api.PUT("/weekly-goals/:week", dailyH.PutWeekly)
	api.GET("/monthly-planning/:month", dailyH.GetMonthly)
	api.PUT("/monthly-planning/:month", dailyH.PutMonthly)

	api.GET("/progress", progressH.User)
	api.GET("/progress/team", leaders, progressH.Team)
	api.GET("/recommendations", progressH.Recommendations)

	api.GET("/questions/:weekday", settingsH.Questions)
	api.PUT("/admin/questions/:weekday", admin, settingsH.PutQuestions)
	api.GET("/admin/settings", admin, settingsH.Get)
	api.PUT("/admin/settings", admin, settingsH.Put)

	api.GET("/events", eventsH.List)
	api.GET("/events/:id", eventsH.Get)
	api.GET("/events/:id/slots", eventsH.Slots)
	api.POST("/events", leaders, eventsH.Create)
	api.PUT("/events/:id", leaders, eventsH.Update)
	api.DELETE("/events/:id", leaders, eventsH.Delete)
	api.GET("/event-topics", eventsH.ListTopics)
	api.POST("/event-topics", leaders, eventsH.CreateTopic)
	api.PUT("/event-topics/:id", leaders, eventsH.UpdateTopic)
	api.DELETE("/event-topics/:id", leaders, eventsH.DeleteTopic)

	api.GET("/speakers", bookingsH.ListSpeakers)
	api.POST("/speakers", leaders, bookingsH.CreateSpeaker)
	api.PUT("/speakers/:id", leaders, bookingsH.UpdateSpeaker)
	api.DELETE("/speakers/:id", leaders, bookingsH.DeleteSpeaker)
	api.GET("/speaker-bookings", bookingsH.List)
	api.POST("/speaker-bookings", leaders, bookingsH.Book)
	api.DELETE("/speaker-bookings/:id", leaders, bookingsH.Cancel)

	api.GET("/push-subscriptions", pushH.List)
	api.POST("/push-subscriptions", pushH.Subscribe)
	api.DELETE("/push-subscriptions", pushH.Unsubscribe)
	api.GET("/consents", pushH.ListConsents)
	api.POST("/consents", pushH.RecordConsent)

	api.GET("/export/team-report", leaders, exportH.TeamReport)
	api.POST("/import/preview", admin, importH.Preview)
	api.POST("/import/confirm", admin, importH.Confirm)

	if d.Static != nil {
		r.NoRoute(gin.WrapH(http.FileServer(http.FS(d.Static))))
	}
	return r
}
