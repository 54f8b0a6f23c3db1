package service

import (
	"context"
	"testing"

	"buddyremind/internal/apperr"
	"buddyremind/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewBuddyService(db)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))

	buddies, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, buddies, 2)

	def, err := svc.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Helper", def.Name)
	assert.True(t, def.IsDefault)
}

func TestGetDefaultWithoutSeeding(t *testing.T) {
	svc := NewBuddyService(testDB(t))
	_, err := svc.GetDefault(context.Background())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateCustomBuddy(t *testing.T) {
	svc := NewBuddyService(testDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, model.BuddyInput{Name: "Mine", Personality: model.PersonalityCustom})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	buddy, err := svc.Create(ctx, 1, model.BuddyInput{
		Name:         "Mine",
		Personality:  model.PersonalityCustom,
		CustomTraits: []string{"sarcastic", "direct"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, buddy.CreatorID)
	assert.Equal(t, "/assets/buddies/default.png", buddy.AvatarURL)
}

func TestBuddyVisibility(t *testing.T) {
	svc := NewBuddyService(testDB(t))
	ctx := context.Background()

	private, err := svc.Create(ctx, 1, model.BuddyInput{Name: "Secret", Personality: model.PersonalityCoach})
	require.NoError(t, err)

	// The creator sees it, others do not.
	_, err = svc.Get(ctx, 1, private.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, 2, private.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = svc.Get(ctx, 2, private.ID+99)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	public, err := svc.Create(ctx, 1, model.BuddyInput{Name: "Shared", Personality: model.PersonalityZen, IsPublic: true})
	require.NoError(t, err)
	_, err = svc.Get(ctx, 2, public.ID)
	require.NoError(t, err)
}

func TestBuiltinPersonalityGetsStockMessages(t *testing.T) {
	svc := NewBuddyService(testDB(t))

	buddy, err := svc.Create(context.Background(), 1, model.BuddyInput{
		Name: "Coacher", Personality: model.PersonalityMotivator,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, buddy.Messages.Data().Completion)
	assert.NotEmpty(t, buddy.MessageFor(model.EventCompletion, "deadlift PR"))
}
