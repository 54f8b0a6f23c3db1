package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCompletionCounters(t *testing.T) {
	st := NewUserStats(1)
	now := time.Now()

	st.ApplyCompletion(true, now)
	st.ApplyCompletion(true, now)
	st.ApplyCompletion(false, now)

	rs := st.Reminders.Data()
	assert.Equal(t, 3, rs.Completed.Total)
	assert.Equal(t, 2, rs.Completed.OnTime)
	assert.Equal(t, 1, rs.Completed.Late)
}

func TestStreakFirstCompletionStartsAtOne(t *testing.T) {
	st := NewUserStats(1)
	st.ApplyCompletion(true, time.Now())

	b := st.Behavior.Data()
	assert.Equal(t, 1, b.StreakLength)
	assert.Equal(t, 1, b.LongestStreak)
	require.NotNil(t, b.LastActive)
}

func TestStreakGapBoundary(t *testing.T) {
	base := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	// A gap of exactly 24h keeps the streak alive.
	st := NewUserStats(1)
	st.ApplyCompletion(true, base)
	st.ApplyCompletion(true, base.Add(24*time.Hour))
	assert.Equal(t, 2, st.Behavior.Data().StreakLength)

	// One millisecond past 24h resets it to 1, longest is retained.
	st = NewUserStats(1)
	st.ApplyCompletion(true, base)
	st.ApplyCompletion(true, base.Add(12*time.Hour))
	st.ApplyCompletion(true, base.Add(12*time.Hour).Add(24*time.Hour+time.Millisecond))

	b := st.Behavior.Data()
	assert.Equal(t, 1, b.StreakLength)
	assert.Equal(t, 2, b.LongestStreak)
}

func TestApplyTagsCountsAndOrder(t *testing.T) {
	st := NewUserStats(1)

	st.ApplyTags([]string{"work", "home"})
	st.ApplyTags([]string{"home"})

	tags := st.Reminders.Data().PreferredTags
	require.Len(t, tags, 2)
	assert.Equal(t, TagCount{Name: "home", Count: 2}, tags[0])
	assert.Equal(t, TagCount{Name: "work", Count: 1}, tags[1])
}

func TestApplyTagsTiesAreStableFirstSeen(t *testing.T) {
	st := NewUserStats(1)

	st.ApplyTags([]string{"alpha"})
	st.ApplyTags([]string{"beta"})
	st.ApplyTags([]string{"gamma"})

	tags := st.Reminders.Data().PreferredTags
	require.Len(t, tags, 3)
	assert.Equal(t, "alpha", tags[0].Name)
	assert.Equal(t, "beta", tags[1].Name)
	assert.Equal(t, "gamma", tags[2].Name)
}

func TestApplyTagsEmptyIsNoop(t *testing.T) {
	st := NewUserStats(1)
	st.ApplyTags(nil)
	st.ApplyTags([]string{})
	assert.Empty(t, st.Reminders.Data().PreferredTags)
}

func TestNewUserStatsNeutralScores(t *testing.T) {
	st := NewUserStats(7)
	b := st.Behavior.Data()
	assert.Equal(t, 7, st.UserID)
	assert.Equal(t, 50, b.ProcrastinationIndex)
	assert.Equal(t, 50, b.AdaptabilityScore)
}

func TestProcrastinationIndexTracksLateness(t *testing.T) {
	now := time.Now()

	st := NewUserStats(1)
	st.ApplyCompletion(false, now)
	assert.Equal(t, 52, st.Behavior.Data().ProcrastinationIndex)
	st.ApplyCompletion(true, now)
	assert.Equal(t, 51, st.Behavior.Data().ProcrastinationIndex)

	// The index saturates at the bounds instead of drifting past them.
	st = NewUserStats(1)
	for i := 0; i < 40; i++ {
		st.ApplyCompletion(false, now)
	}
	assert.Equal(t, 100, st.Behavior.Data().ProcrastinationIndex)

	st = NewUserStats(1)
	for i := 0; i < 80; i++ {
		st.ApplyCompletion(true, now)
	}
	assert.Equal(t, 0, st.Behavior.Data().ProcrastinationIndex)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-5))
	assert.Equal(t, 42, ClampScore(42))
	assert.Equal(t, 100, ClampScore(250))
}
