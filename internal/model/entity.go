package model

import "time"

type Role string

const (
	RoleAdvisor   Role = "advisor"
	RoleSubLeader Role = "sub_leader"
	RoleTopLeader Role = "top_leader"
	RoleAdmin     Role = "admin"
	RoleTrainee   Role = "trainee"
)

var Roles = []Role{RoleAdvisor, RoleSubLeader, RoleTopLeader, RoleAdmin, RoleTrainee}

func (r Role) Valid() bool {
	for _, x := range Roles {
		if x == r {
			return true
		}
	}
	return false
}

// IsLeader is true for roles that manage other users.
func (r Role) IsLeader() bool {
	return r == RoleSubLeader || r == RoleTopLeader
}

type User struct {
	ID              int64           `gorm:"primaryKey" json:"id"`
	Email           string          `gorm:"size:191;uniqueIndex;not null" json:"email"`
	PasswordHash    string          `gorm:"size:255" json:"-"`
	Name            string          `gorm:"size:100" json:"name"`
	Role            Role            `gorm:"size:20;index" json:"role"`
	TeamID          *int64          `gorm:"index" json:"team_id"`
	ParentLeaderID  *int64          `gorm:"index" json:"parent_leader_id"`
	PersonalTargets PersonalTargets `gorm:"type:json;serializer:json" json:"personal_targets"`
	MonthlyTargets  MetricValues    `gorm:"type:json;serializer:json" json:"monthly_targets"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type Team struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ParentTeamID *int64    `gorm:"index" json:"parent_team_id"`
	TeamLevel    int       `json:"team_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DailyEntry struct {
	ID                  int64        `gorm:"primaryKey" json:"id"`
	UserID              int64        `gorm:"not null;uniqueIndex:uk_daily_user_date" json:"user_id"`
	EntryDate           Date         `gorm:"type:date;not null;uniqueIndex:uk_daily_user_date" json:"entry_date"`
	FA                  int          `gorm:"column:fa" json:"fa"`
	EH                  int          `gorm:"column:eh" json:"eh"`
	NewAppointments     int          `gorm:"column:new_appointments" json:"new_appointments"`
	Recommendations     int          `gorm:"column:recommendations" json:"recommendations"`
	TIVInvitations      int          `gorm:"column:tiv_invitations" json:"tiv_invitations"`
	TAAInvitations      int          `gorm:"column:taa_invitations" json:"taa_invitations"`
	TGSRegistrations    int          `gorm:"column:tgs_registrations" json:"tgs_registrations"`
	BAVChecks           int          `gorm:"column:bav_checks" json:"bav_checks"`
	ReflectionYesterday string       `gorm:"type:text" json:"reflection_yesterday"`
	ReflectionToday     string       `gorm:"type:text" json:"reflection_today"`
	TraineeAnswer       string       `gorm:"type:text" json:"trainee_answer"`
	TodayGoals          MetricValues `gorm:"type:json;serializer:json" json:"today_goals"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// Value returns the achieved count for m.
func (e DailyEntry) Value(m Metric) int {
	switch m {
	case MetricFA:
		return e.FA
	case MetricEH:
		return e.EH
	case MetricNewAppointments:
		return e.NewAppointments
	case MetricRecommendations:
		return e.Recommendations
	case MetricTIVInvitations:
		return e.TIVInvitations
	case MetricTAAInvitations:
		return e.TAAInvitations
	case MetricTGSRegistrations:
		return e.TGSRegistrations
	case MetricBAVChecks:
		return e.BAVChecks
	}
	return 0
}

func (e *DailyEntry) SetValue(m Metric, n int) {
	switch m {
	case MetricFA:
		e.FA = n
	case MetricEH:
		e.EH = n
	case MetricNewAppointments:
		e.NewAppointments = n
	case MetricRecommendations:
		e.Recommendations = n
	case MetricTIVInvitations:
		e.TIVInvitations = n
	case MetricTAAInvitations:
		e.TAAInvitations = n
	case MetricTGSRegistrations:
		e.TGSRegistrations = n
	case MetricBAVChecks:
		e.BAVChecks = n
	}
}

type WeeklyGoal struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	UserID    int64        `gorm:"not null;uniqueIndex:uk_weekly_user_week" json:"user_id"`
	WeekStart Date         `gorm:"type:date;not null;uniqueIndex:uk_weekly_user_week" json:"week_start"`
	Goals     MetricValues `gorm:"embedded;embeddedPrefix:goal_" json:"goals"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type MonthlyPlanning struct {
	ID         int64        `gorm:"primaryKey" json:"id"`
	UserID     int64        `gorm:"not null;uniqueIndex:uk_monthly_user_month" json:"user_id"`
	MonthStart Date         `gorm:"type:date;not null;uniqueIndex:uk_monthly_user_month" json:"month_start"`
	Targets    MetricValues `gorm:"embedded;embeddedPrefix:target_" json:"targets"`
	Notes      string       `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type Event struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	Title              string    `gorm:"size:200;not null" json:"title"`
	TopicID            *int64    `gorm:"index" json:"topic_id"`
	EventDate          Date      `gorm:"type:date;not null" json:"event_date"`
	StartTime          string    `gorm:"size:5" json:"start_time"`
	Location           string    `gorm:"size:200" json:"location"`
	IsRecurring        bool      `json:"is_recurring"`
	RecurrenceDays     []int     `gorm:"type:json;serializer:json" json:"recurrence_days"`
	RecurrenceInterval int       `gorm:"not null" json:"recurrence_interval"`
	RecurrenceEndDate  Date      `gorm:"type:date" json:"recurrence_end_date,omitempty"`
	CreatedBy          int64     `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type EventTopic struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Speaker struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:191" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	UserID    *int64    `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// SpeakerBooking binds a speaker to one occurrence of an event. ConfirmedSlot
// is "<event_id>:<date>" while the booking is confirmed and NULL otherwise;
// its unique index keeps a single confirmed booking per occurrence.
type SpeakerBooking struct {
	ID            int64         `gorm:"primaryKey" json:"id"`
	EventID       int64         `gorm:"not null;index" json:"event_id"`
	SpeakerID     int64         `gorm:"not null;index" json:"speaker_id"`
	EventDate     Date          `gorm:"type:date;not null;index" json:"event_date"`
	Status        BookingStatus `gorm:"size:20;not null" json:"status"`
	ConfirmedSlot *string       `gorm:"size:64;uniqueIndex" json:"-"`
	BookedBy      int64         `json:"booked_by"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type PushSubscription struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Endpoint  string    `gorm:"size:500;uniqueIndex;not null" json:"endpoint"`
	P256dh    string    `gorm:"size:255" json:"p256dh"`
	Auth      string    `gorm:"size:255" json:"auth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Consent struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uk_consent_user_kind" json:"user_id"`
	Kind      string    `gorm:"size:50;not null;uniqueIndex:uk_consent_user_kind" json:"kind"`
	Granted   bool      `json:"granted"`
	Version   string    `gorm:"size:20" json:"version"`
	GrantedAt time.Time `json:"granted_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WeekdayQuestion struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Weekday         int       `gorm:"uniqueIndex;not null" json:"weekday"`
	YesterdayPrompt string    `gorm:"type:text" json:"yesterday_prompt"`
	TodayPrompts    []string  `gorm:"type:json;serializer:json" json:"today_prompts"`
	TraineePrompt   string    `gorm:"type:text" json:"trainee_prompt"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AdminSetting is a keyed JSON document edited from the admin panel.
type AdminSetting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string             { return "users" }
func (Team) TableName() string             { return "teams" }
func (DailyEntry) TableName() string       { return "daily_entries" }
func (WeeklyGoal) TableName() string       { return "weekly_goals" }
func (MonthlyPlanning) TableName() string  { return "monthly_planning" }
func (Event) TableName() string            { return "events" }
func (EventTopic) TableName() string       { return "event_topics" }
func (Speaker) TableName() string          { return "speakers" }
func (SpeakerBooking) TableName() string   { return "speaker_bookings" }
func (PushSubscription) TableName() string { return "push_subscriptions" }
func (Consent) TableName() string          { return "consents" }
func (WeekdayQuestion) TableName() string  { return "weekday_questions" }
func (AdminSetting) TableName() string     { return "admin_settings" }

// All lists every persisted model, in dependency order.
func All() []any {
	return []any{
		&Team{}, &User{}, &DailyEntry{}, &WeeklyGoal{}, &MonthlyPlanning{},
		&EventTopic{}, &Event{}, &Speaker{}, &SpeakerBooking{},
		&PushSubscription{}, &Consent{}, &WeekdayQuestion{}, &AdminSetting{},
	}
}
