package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buddyremind/internal/apperr"
	"buddyremind/internal/logger"
	"buddyremind/internal/metrics"
	"buddyremind/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReminderService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewReminderService(db *gorm.DB, stats *StatsService) *ReminderService {
	return &ReminderService{db: db, stats: stats}
}

// ReminderFilter carries the list query parameters. Later clauses override
// earlier date bounds the way the original query object did: today replaces
// from/to, overdue replaces everything date-related and forces completed=false.
type ReminderFilter struct {
	Completed *bool
	Priority  string
	Tag       string
	From      *time.Time
	To        *time.Time
	Today     bool
	Overdue   bool
	Sort      string
	Order     string
	Limit     int
}

var sortColumns = map[string]string{
	"dueDate":    "due_date",
	"due_date":   "due_date",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"priority":   "priority",
	"title":      "title",
}

func (s *ReminderService) List(ctx context.Context, userID int, f ReminderFilter) ([]model.Reminder, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)

	completed := f.Completed
	var dueGte, dueLte, dueLt *time.Time

	if f.From != nil {
		dueGte = f.From
	}
	if f.To != nil {
		end := endOfDay(*f.To)
		dueLte = &end
	}
	if f.Today {
		start, end := dayBounds(time.Now())
		dueGte, dueLte = &start, &end
	}
	if f.Overdue {
		now := time.Now()
		dueGte, dueLte = nil, nil
		dueLt = &now
		open := false
		completed = &open
	}

	if completed != nil {
		q = q.Where("completed = ?", *completed)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("tags").Contains(f.Tag))
	}
	if dueGte != nil {
		q = q.Where("due_date >= ?", *dueGte)
	}
	if dueLte != nil {
		q = q.Where("due_date <= ?", *dueLte)
	}
	if dueLt != nil {
		q = q.Where("due_date < ?", *dueLt)
	}

	column, ok := sortColumns[f.Sort]
	if !ok {
		column = "due_date"
	}
	dir := "ASC"
	if f.Order == "desc" {
		dir = "DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	var reminders []model.Reminder
	if err := q.Order(column + " " + dir).Limit(limit).Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) Get(ctx context.Context, userID, id int) (*model.Reminder, error) {
	return s.owned(ctx, userID, id)
}

func (s *ReminderService) Create(ctx context.Context, userID int, in model.ReminderInput) (*model.Reminder, error) {
	r := model.Reminder{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Tags:        in.Tags,
	}
	if r.Priority == "" {
		r.Priority = model.PriorityMedium
	}
	if in.Recurring != nil {
		r.Recurring = datatypes.NewJSONType(*in.Recurring)
	}
	if in.Notifications != nil {
		r.Notifications = in.Notifications
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.AppendHistory(model.ActionCreated, "", time.Now())

	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}
	metrics.RemindersCreated.Inc()
	s.recordStats("created", func() error {
		return s.stats.RecordCreated(ctx, userID, in.Tags)
	})
	return &r, nil
}

// Update applies a partial update: zero-valued input fields leave the stored
// field unchanged. Clearing a description or disabling recurrence requires
// sending a replacement value (e.g. recurring with enabled=false), not
// omitting the field.
func (s *ReminderService) Update(ctx context.Context, userID, id int, in model.ReminderInput) (*model.Reminder, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		r.Title = in.Title
	}
	if in.Description != "" {
		r.Description = in.Description
	}
	if !in.DueDate.IsZero() {
		r.DueDate = in.DueDate
	}
	if in.Priority != "" {
		r.Priority = in.Priority
	}
	if in.Recurring != nil {
		r.Recurring = datatypes.NewJSONType(*in.Recurring)
	}
	if in.Tags != nil {
		r.Tags = in.Tags
	}
	if in.Notifications != nil {
		r.Notifications = in.Notifications
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.AppendHistory(model.ActionUpdated, "", time.Now())

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	return r, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, id int) error {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(r).Error; err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	metrics.RemindersDeleted.Inc()
	s.recordStats("deleted", func() error {
		return s.stats.RecordDeleted(ctx, userID)
	})
	return nil
}

// ToggleComplete flips the completion flag. Completing sets completedAt,
// records the completion against the user's stats and appends response and
// history entries; reopening clears completedAt and appends a reopen entry.
func (s *ReminderService) ToggleComplete(ctx context.Context, userID, id int) (*model.Reminder, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r.Completed = !r.Completed
	if r.Completed {
		r.CompletedAt = &now
		r.AppendResponse(model.ResponseCompleted, "", now)
		r.AppendHistory(model.ActionCompleted, "", now)
	} else {
		r.CompletedAt = nil
		r.AppendHistory(model.ActionReopened, "", now)
	}

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}

	if r.Completed {
		metrics.RemindersCompleted.Inc()
		onTime := !now.After(r.DueDate)
		s.recordStats("completion", func() error {
			return s.stats.RecordCompletion(ctx, userID, onTime, r.Tags)
		})
	}
	return r, nil
}

// Snooze pushes the due date forward by a named offset. The reminder is
// untouched when the duration token is missing or unrecognized.
func (s *ReminderService) Snooze(ctx context.Context, userID, id int, duration string) (*model.Reminder, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	due, err := model.SnoozeUntil(duration, now)
	if err != nil {
		return nil, err
	}

	r.DueDate = due
	r.AppendResponse(model.ResponseSnoozed, duration, now)
	r.AppendHistory(model.ActionSnoozed, duration, now)

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return nil, fmt.Errorf("update reminder: %w", err)
	}
	metrics.RemindersSnoozed.Inc()
	s.recordStats("snooze", func() error {
		return s.stats.RecordSnoozed(ctx, userID)
	})
	return r, nil
}

// Analytics aggregates the caller's reminders due within the period window
// ending now. Upcoming looks the same span forward: open reminders due
// within (now, now+period].
func (s *ReminderService) Analytics(ctx context.Context, userID int, period string) (*model.AnalyticsSummary, error) {
	now := time.Now()
	var start, horizon time.Time
	switch period {
	case "7days":
		start, horizon = now.AddDate(0, 0, -7), now.AddDate(0, 0, 7)
	case "30days", "":
		period = "30days"
		start, horizon = now.AddDate(0, 0, -30), now.AddDate(0, 0, 30)
	case "90days":
		start, horizon = now.AddDate(0, 0, -90), now.AddDate(0, 0, 90)
	case "year":
		start, horizon = now.AddDate(-1, 0, 0), now.AddDate(1, 0, 0)
	default:
		return nil, apperr.Validation("invalid period %q", period)
	}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&model.Reminder{}).
			Where("user_id = ? AND due_date >= ? AND due_date <= ?", userID, start, now)
	}

	out := &model.AnalyticsSummary{Period: period, Start: start, End: now}
	if err := base().Count(&out.Total).Error; err != nil {
		return nil, fmt.Errorf("count reminders: %w", err)
	}
	if err := base().Where("completed = ?", true).Count(&out.Completed).Error; err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}
	if err := base().Where("completed = ?", false).Count(&out.Overdue).Error; err != nil {
		return nil, fmt.Errorf("count overdue: %w", err)
	}
	err := s.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("user_id = ? AND completed = ? AND due_date > ? AND due_date <= ?", userID, false, now, horizon).
		Count(&out.Upcoming).Error
	if err != nil {
		return nil, fmt.Errorf("count upcoming: %w", err)
	}
	return out, nil
}

func (s *ReminderService) owned(ctx context.Context, userID, id int) (*model.Reminder, error) {
	var r model.Reminder
	err := s.db.WithContext(ctx).First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("reminder not found with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query reminder: %w", err)
	}
	if r.UserID != userID {
		return nil, apperr.Authorization("not authorized to access this reminder")
	}
	return &r, nil
}

// Stats updates ride along with reminder mutations; a failure there must
// not undo the already-persisted reminder write, so it is logged instead.
func (s *ReminderService) recordStats(op string, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn("stats update failed", "op", op, "err", err)
	}
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, endOfDay(now)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
