package model

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Profile is the public view of a user.
type Profile struct {
	ID              int64           `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Role            Role            `json:"role"`
	TeamID          *int64          `json:"team_id"`
	TeamName        string          `json:"team_name,omitempty"`
	ParentLeaderID  *int64          `json:"parent_leader_id"`
	PersonalTargets PersonalTargets `json:"personal_targets"`
	MonthlyTargets  MetricValues    `json:"monthly_targets"`
	IsActive        bool            `json:"is_active"`
}

func NewProfile(u User, teamName string) Profile {
	return Profile{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		TeamID:          u.TeamID,
		TeamName:        teamName,
		ParentLeaderID:  u.ParentLeaderID,
		PersonalTargets: u.PersonalTargets,
		MonthlyTargets:  u.MonthlyTargets,
		IsActive:        u.IsActive,
	}
}

type CreateUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Name           string `json:"name" binding:"required,max=100"`
	Role           Role   `json:"role" binding:"required,role"`
	TeamID         *int64 `json:"team_id"`
	ParentLeaderID *int64 `json:"parent_leader_id"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Role     *Role   `json:"role" binding:"omitempty,role"`
	TeamID   *int64  `json:"team_id"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type SetLeaderRequest struct {
	ParentLeaderID *int64 `json:"parent_leader_id"`
}

type TeamRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	ParentTeamID *int64 `json:"parent_team_id"`
	TeamLevel    int    `json:"team_level" binding:"gte=0"`
}

// DailyEntryRequest is the body of the daily form.
type DailyEntryRequest struct {
	FA                  int          `json:"fa" binding:"gte=0"`
	EH                  int          `json:"eh" binding:"gte=0"`
	NewAppointments     int          `json:"new_appointments" binding:"gte=0"`
	Recommendations     int          `json:"recommendations" binding:"gte=0"`
	TIVInvitations      int          `json:"tiv_invitations" binding:"gte=0"`
	TAAInvitations      int          `json:"taa_invitations" binding:"gte=0"`
	TGSRegistrations    int          `json:"tgs_registrations" binding:"gte=0"`
	BAVChecks           int          `json:"bav_checks" binding:"gte=0"`
	ReflectionYesterday string       `json:"reflection_yesterday" binding:"max=5000"`
	ReflectionToday     string       `json:"reflection_today" binding:"max=5000"`
	TraineeAnswer       string       `json:"trainee_answer" binding:"max=5000"`
	TodayGoals          MetricValues `json:"today_goals"`
}

type PlanningRequest struct {
	Targets MetricValues `json:"targets"`
	Notes   string       `json:"notes" binding:"max=5000"`
}

type EventRequest struct {
	Title              string `json:"title" binding:"required,max=200"`
	TopicID            *int64 `json:"topic_id"`
	EventDate          Date   `json:"event_date" binding:"required,isodate"`
	StartTime          string `json:"start_time" binding:"omitempty,len=5"`
	Location           string `json:"location" binding:"max=200"`
	IsRecurring        bool   `json:"is_recurring"`
	RecurrenceDays     []int  `json:"recurrence_days" binding:"omitempty,dive,min=1,max=7"`
	RecurrenceInterval int    `json:"recurrence_interval" binding:"gte=0"`
	RecurrenceEndDate  Date   `json:"recurrence_end_date" binding:"omitempty,isodate"`
}

type TopicRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type SpeakerRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Email  string `json:"email" binding:"omitempty,email"`
	Bio    string `json:"bio" binding:"max=10000"`
	UserID *int64 `json:"user_id"`
}

type BookingRequest struct {
	EventID   int64  `json:"event_id" binding:"required"`
	SpeakerID int64  `json:"speaker_id" binding:"required"`
	EventDate Date   `json:"event_date" binding:"required,isodate"`
	Notes     string `json:"notes" binding:"max=2000"`
}

type QuestionRequest struct {
	YesterdayPrompt string   `json:"yesterday_prompt" binding:"required"`
	TodayPrompts    []string `json:"today_prompts" binding:"required,min=1"`
	TraineePrompt   string   `json:"trainee_prompt"`
}

type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required,url,max=500"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys"`
}

type ConsentRequest struct {
	Kind    string `json:"kind" binding:"required,max=50"`
	Granted bool   `json:"granted"`
	Version string `json:"version" binding:"max=20"`
}

type WeeklyGoalRequest struct {
	Goals MetricValues `json:"goals"`
}

type ImportConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}
