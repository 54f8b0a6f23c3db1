package service

import (
	"context"
	"errors"
	"fmt"

	"buddyremind/internal/apperr"
	"buddyremind/internal/logger"
	"buddyremind/internal/model"

	"github.com/hashicorp/go-multierror"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BuddyService struct{ db *gorm.DB }

func NewBuddyService(db *gorm.DB) *BuddyService { return &BuddyService{db: db} }

func (s *BuddyService) ListPublic(ctx context.Context) ([]model.Buddy, error) {
	var buddies []model.Buddy
	if err := s.db.WithContext(ctx).Where("is_public = ?", true).Order("id").Find(&buddies).Error; err != nil {
		return nil, fmt.Errorf("query buddies: %w", err)
	}
	return buddies, nil
}

// GetDefault returns the designated default buddy, assigned to new users at
// registration.
func (s *BuddyService) GetDefault(ctx context.Context) (*model.Buddy, error) {
	var buddy model.Buddy
	err := s.db.WithContext(ctx).Where("is_default = ?", true).First(&buddy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no default buddy configured")
	}
	if err != nil {
		return nil, fmt.Errorf("query default buddy: %w", err)
	}
	return &buddy, nil
}

// Get returns a buddy visible to the caller: public ones or the caller's own.
func (s *BuddyService) Get(ctx context.Context, userID, id int) (*model.Buddy, error) {
	var buddy model.Buddy
	err := s.db.WithContext(ctx).First(&buddy, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("buddy not found with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query buddy: %w", err)
	}
	if !buddy.IsPublic && buddy.CreatorID != userID {
		return nil, apperr.Authorization("not authorized to access this buddy")
	}
	return &buddy, nil
}

// Create stores a caller-owned buddy. Built-in personalities without
// explicit templates get the stock message set.
func (s *BuddyService) Create(ctx context.Context, userID int, in model.BuddyInput) (*model.Buddy, error) {
	buddy := model.Buddy{
		Name:         in.Name,
		Personality:  in.Personality,
		CustomTraits: in.CustomTraits,
		AvatarURL:    in.AvatarURL,
		IsPublic:     in.IsPublic,
		CreatorID:    userID,
	}
	if buddy.AvatarURL == "" {
		buddy.AvatarURL = "/assets/buddies/default.png"
	}
	if in.Messages != nil {
		buddy.Messages = datatypes.NewJSONType(*in.Messages)
	} else if in.Personality != model.PersonalityCustom {
		buddy.Messages = datatypes.NewJSONType(model.DefaultMessages(in.Personality))
	}
	if in.Adaptive != nil {
		buddy.Adaptive = datatypes.NewJSONType(*in.Adaptive)
	} else {
		buddy.Adaptive = datatypes.NewJSONType(model.AdaptiveBehavior{
			UserStyle:         "auto-detect",
			AdaptToTimeOfDay:  true,
			AdaptToCompletion: true,
		})
	}
	if err := buddy.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&buddy).Error; err != nil {
		return nil, fmt.Errorf("insert buddy: %w", err)
	}
	return &buddy, nil
}

// SeedDefaults upserts the stock personas by name. Per-buddy failures are
// aggregated so one bad row does not mask the rest.
func (s *BuddyService) SeedDefaults(ctx context.Context) error {
	seeds := []model.Buddy{
		{
			Name:        "Helper",
			Personality: model.PersonalityHelper,
			AvatarURL:   "/assets/buddies/helper.png",
			Messages:    datatypes.NewJSONType(model.DefaultMessages(model.PersonalityHelper)),
			Adaptive: datatypes.NewJSONType(model.AdaptiveBehavior{
				UserStyle:         "auto-detect",
				AdaptToTimeOfDay:  true,
				AdaptToCompletion: true,
			}),
			IsDefault: true,
			IsPublic:  true,
		},
		{
			Name:        "Motivator",
			Personality: model.PersonalityMotivator,
			AvatarURL:   "/assets/buddies/motivator.png",
			Messages:    datatypes.NewJSONType(model.DefaultMessages(model.PersonalityMotivator)),
			Adaptive: datatypes.NewJSONType(model.AdaptiveBehavior{
				UserStyle:         "auto-detect",
				AdaptToTimeOfDay:  true,
				AdaptToCompletion: true,
				AdaptToMood:       true,
			}),
			IsPublic: true,
		},
	}

	var result *multierror.Error
	for i := range seeds {
		seed := seeds[i]
		var existing model.Buddy
		err := s.db.WithContext(ctx).Where("name = ? AND creator_id = 0", seed.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.db.WithContext(ctx).Create(&seed).Error; err != nil {
				result = multierror.Append(result, fmt.Errorf("seed %s: %w", seed.Name, err))
				continue
			}
			logger.Info("buddy seeded", "name", seed.Name)
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("query %s: %w", seed.Name, err))
		default:
			seed.ID = existing.ID
			seed.CreatedAt = existing.CreatedAt
			if err := s.db.WithContext(ctx).Save(&seed).Error; err != nil {
				result = multierror.Append(result, fmt.Errorf("update %s: %w", seed.Name, err))
				continue
			}
			logger.Info("buddy refreshed", "name", seed.Name)
		}
	}
	return result.ErrorOrNil()
}
