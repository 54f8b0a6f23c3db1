package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buddyremind/internal/model"

	"gorm.io/gorm"
)

// StatsService owns the per-user rolling statistics record.
type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

// GetOrCreate returns the stats record for a user, creating a
// zero-initialized one on first need. Registration calls this eagerly;
// everything else lazily.
func (s *StatsService) GetOrCreate(ctx context.Context, userID int) (*model.UserStats, error) {
	var st model.UserStats
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = *model.NewUserStats(userID)
		if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
			return nil, fmt.Errorf("create stats: %w", err)
		}
		return &st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return &st, nil
}

// RecordCompletion bumps the completion counters, advances the streak and
// folds the reminder's tags into the preference list.
func (s *StatsService) RecordCompletion(ctx context.Context, userID int, onTime bool, tags []string) error {
	st, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	st.ApplyCompletion(onTime, time.Now())
	st.ApplyTags(tags)
	return s.save(ctx, st)
}

func (s *StatsService) RecordCreated(ctx context.Context, userID int, tags []string) error {
	st, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	st.ApplyCreated()
	st.ApplyTags(tags)
	return s.save(ctx, st)
}

func (s *StatsService) RecordSnoozed(ctx context.Context, userID int) error {
	st, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	st.ApplySnoozed()
	return s.save(ctx, st)
}

func (s *StatsService) RecordDeleted(ctx context.Context, userID int) error {
	st, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	st.ApplyDeleted()
	return s.save(ctx, st)
}

func (s *StatsService) save(ctx context.Context, st *model.UserStats) error {
	if err := s.db.WithContext(ctx).Save(st).Error; err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
