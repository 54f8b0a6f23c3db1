package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID                  int                             `gorm:"primaryKey" json:"id"`
	Name                string                          `json:"name"`
	Email               string                          `gorm:"uniqueIndex;size:191" json:"email"`
	Password            string                          `json:"-"`
	Role                string                          `gorm:"default:user" json:"role"`
	Verified            bool                            `json:"verified"`
	VerificationToken   string                          `gorm:"index;size:64" json:"-"`
	ResetPasswordToken  string                          `gorm:"index;size:64" json:"-"`
	ResetPasswordExpire *time.Time                      `json:"-"`
	LastLogin           *time.Time                      `json:"last_login,omitempty"`
	Preferences         datatypes.JSONType[Preferences] `json:"preferences"`
	CreatedAt           time.Time                       `json:"created_at"`
	UpdatedAt           time.Time                       `json:"updated_at"`
}

// Preferences is the per-user settings blob; the default buddy is assigned
// at registration when a default persona exists.
type Preferences struct {
	DefaultBuddyID int    `json:"default_buddy_id,omitempty"`
	MessageStyle   string `json:"message_style,omitempty"`
}

type Reminder struct {
	ID            int                               `gorm:"primaryKey" json:"id"`
	UserID        int                               `gorm:"index:idx_reminders_user_due" json:"user_id"`
	Title         string                            `gorm:"size:100" json:"title"`
	Description   string                            `gorm:"size:500" json:"description"`
	DueDate       time.Time                         `gorm:"index:idx_reminders_user_due" json:"due_date"`
	Priority      string                            `gorm:"default:medium;size:16" json:"priority"`
	Completed     bool                              `json:"completed"`
	CompletedAt   *time.Time                        `json:"completed_at,omitempty"`
	Recurring     datatypes.JSONType[Recurrence]    `json:"recurring"`
	Tags          datatypes.JSONSlice[string]       `json:"tags"`
	Notifications datatypes.JSONSlice[Notification] `json:"notifications"`
	Responses     datatypes.JSONSlice[UserResponse] `json:"responses"`
	History       datatypes.JSONSlice[HistoryEntry] `json:"history"`
	CreatedAt     time.Time                         `json:"created_at"`
	UpdatedAt     time.Time                         `json:"updated_at"`
}

// Recurrence describes whether and how a reminder repeats.
type Recurrence struct {
	Enabled       bool       `json:"enabled"`
	Frequency     string     `json:"frequency,omitempty"`
	CustomPattern string     `json:"custom_pattern,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

type Notification struct {
	Time time.Time `json:"time"`
	Sent bool      `json:"sent"`
}

type UserResponse struct {
	Kind string    `json:"kind"` // completed, snoozed, dismissed
	At   time.Time `json:"at"`
	Note string    `json:"note,omitempty"`
}

type HistoryEntry struct {
	Action string    `json:"action"` // created, updated, completed, snoozed, reopened
	At     time.Time `json:"at"`
	Detail string    `json:"detail,omitempty"`
}

// UserStats holds one rolling statistics record per user, created lazily.
type UserStats struct {
	ID              int                                   `gorm:"primaryKey" json:"id"`
	UserID          int                                   `gorm:"uniqueIndex" json:"user_id"`
	Reminders       datatypes.JSONType[ReminderStats]     `json:"reminder_stats"`
	TimePatterns    datatypes.JSONType[TimePatterns]      `json:"time_patterns"`
	Categories      datatypes.JSONSlice[TagPerformance]   `json:"category_performance"`
	Buddy           datatypes.JSONType[BuddyInteraction]  `json:"buddy_interaction"`
	Behavior        datatypes.JSONType[UserBehavior]      `json:"user_behavior"`
	Recommendations datatypes.JSONType[Recommendations]   `json:"recommendations"`
	UpdatedAt       time.Time                             `json:"updated_at"`
}

type ReminderStats struct {
	Completed              CompletionCounts `json:"completed"`
	Created                int              `json:"created"`
	Snoozed                int              `json:"snoozed"`
	Deleted                int              `json:"deleted"`
	AverageCompletionHours float64          `json:"average_completion_hours"`
	PreferredTags          []TagCount       `json:"preferred_tags,omitempty"`
}

type CompletionCounts struct {
	Total  int `json:"total"`
	OnTime int `json:"on_time"`
	Late   int `json:"late"`
}

type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TimePatterns struct {
	MostProductiveDay  string `json:"most_productive_day,omitempty"`
	MostProductiveTime string `json:"most_productive_time,omitempty"` // morning, afternoon, evening, night
	ConsistencyScore   int    `json:"consistency_score"`
}

type TagPerformance struct {
	Tag             string  `json:"tag"`
	CompletionRate  float64 `json:"completion_rate"`
	AveragePriority string  `json:"average_priority,omitempty"`
	Count           int     `json:"count"`
}

type BuddyInteraction struct {
	PreferredBuddyID      int    `json:"preferred_buddy_id,omitempty"`
	InteractionRate       int    `json:"interaction_rate"`
	Responsiveness        int    `json:"responsiveness"`
	PreferredMessageStyle string `json:"preferred_message_style,omitempty"`
}

type UserBehavior struct {
	StreakLength          int        `json:"streak_length"`
	LongestStreak         int        `json:"longest_streak"`
	LastActive            *time.Time `json:"last_active,omitempty"`
	AverageSessionMinutes float64    `json:"average_session_minutes"`
	ProcrastinationIndex  int        `json:"procrastination_index"`
	AdaptabilityScore     int        `json:"adaptability_score"`
}

type Recommendations struct {
	SuggestedTimes        []time.Time `json:"suggested_times,omitempty"`
	SuggestedBuddyType    string      `json:"suggested_buddy_type,omitempty"`
	SuggestedMessageStyle string      `json:"suggested_message_style,omitempty"`
	PersonalizationLevel  int         `json:"personalization_level"`
}

// Buddy is a persona template used to personalize reminder messages.
type Buddy struct {
	ID           int                                  `gorm:"primaryKey" json:"id"`
	Name         string                               `gorm:"size:50" json:"name"`
	Personality  string                               `gorm:"size:16" json:"personality"`
	CustomTraits datatypes.JSONSlice[string]          `json:"custom_traits,omitempty"`
	AvatarURL    string                               `json:"avatar_url"`
	Messages     datatypes.JSONType[MessageSet]       `json:"messages"`
	Adaptive     datatypes.JSONType[AdaptiveBehavior] `json:"adaptive_behavior"`
	IsDefault    bool                                 `gorm:"index" json:"is_default"`
	IsPublic     bool                                 `json:"is_public"`
	CreatorID    int                                  `json:"creator_id,omitempty"`
	Usage        datatypes.JSONType[BuddyUsage]       `json:"usage_stats"`
	CreatedAt    time.Time                            `json:"created_at"`
	UpdatedAt    time.Time                            `json:"updated_at"`
}

// MessageSet holds the per-event message templates; {title} is substituted
// with the reminder title when a message is picked.
type MessageSet struct {
	Greeting      []string `json:"greeting,omitempty"`
	Reminder      []string `json:"reminder,omitempty"`
	Encouragement []string `json:"encouragement,omitempty"`
	Completion    []string `json:"completion,omitempty"`
	Overdue       []string `json:"overdue,omitempty"`
	Inactivity    []string `json:"inactivity,omitempty"`
}

type AdaptiveBehavior struct {
	UserStyle         string `json:"user_style,omitempty"` // verbose, concise, casual, formal, auto-detect
	AdaptToTimeOfDay  bool   `json:"adapt_to_time_of_day"`
	AdaptToCompletion bool   `json:"adapt_to_completion"`
	AdaptToMood       bool   `json:"adapt_to_mood"`
}

type BuddyUsage struct {
	UserCount      int     `json:"user_count"`
	CompletionRate float64 `json:"completion_rate"`
	Rating         float64 `json:"rating"`
}

func (User) TableName() string      { return "users" }
func (Reminder) TableName() string  { return "reminders" }
func (UserStats) TableName() string { return "user_stats" }
func (Buddy) TableName() string     { return "buddies" }
