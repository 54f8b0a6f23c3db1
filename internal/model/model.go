package model

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type SnoozeRequest struct {
	SnoozeDuration string `json:"snooze_duration"`
}

// ReminderInput is the client-supplied portion of a reminder; the owner is
// always taken from the authenticated caller, never from the body.
type ReminderInput struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	DueDate       time.Time      `json:"due_date"`
	Priority      string         `json:"priority"`
	Recurring     *Recurrence    `json:"recurring,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// BuddyInput is the client-supplied portion of a custom buddy.
type BuddyInput struct {
	Name         string            `json:"name"`
	Personality  string            `json:"personality"`
	CustomTraits []string          `json:"custom_traits,omitempty"`
	AvatarURL    string            `json:"avatar_url,omitempty"`
	Messages     *MessageSet       `json:"messages,omitempty"`
	Adaptive     *AdaptiveBehavior `json:"adaptive_behavior,omitempty"`
	IsPublic     bool              `json:"is_public"`
}

// AnalyticsSummary is the windowed aggregate returned by the analytics
// endpoint: counts of reminders due within [start,end].
type AnalyticsSummary struct {
	Period    string    `json:"period"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Total     int64     `json:"total"`
	Completed int64     `json:"completed"`
	Overdue   int64     `json:"overdue"`
	Upcoming  int64     `json:"upcoming"`
}
