package model

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

// streakWindow is the maximum gap between activities that keeps a streak
// alive. A gap of exactly 24h still counts; one instant more resets to 1.
const streakWindow = 24 * time.Hour

// NewUserStats returns a zero-initialized stats record for a user.
// Procrastination and adaptability start at the neutral midpoint.
func NewUserStats(userID int) *UserStats {
	return &UserStats{
		UserID: userID,
		Behavior: datatypes.NewJSONType(UserBehavior{
			ProcrastinationIndex: 50,
			AdaptabilityScore:    50,
		}),
	}
}

// ApplyCompletion records one completed reminder and advances the streak.
// The procrastination index drifts up on late completions and recovers
// slowly on punctual ones, bounded to [0,100].
func (s *UserStats) ApplyCompletion(onTime bool, now time.Time) {
	rs := s.Reminders.Data()
	rs.Completed.Total++
	if onTime {
		rs.Completed.OnTime++
	} else {
		rs.Completed.Late++
	}
	s.Reminders = datatypes.NewJSONType(rs)

	b := s.Behavior.Data()
	if onTime {
		b.ProcrastinationIndex = ClampScore(b.ProcrastinationIndex - 1)
	} else {
		b.ProcrastinationIndex = ClampScore(b.ProcrastinationIndex + 2)
	}
	if b.LastActive != nil && now.Sub(*b.LastActive) <= streakWindow {
		b.StreakLength++
		if b.StreakLength > b.LongestStreak {
			b.LongestStreak = b.StreakLength
		}
	} else {
		b.StreakLength = 1
		if b.LongestStreak < 1 {
			b.LongestStreak = 1
		}
	}
	b.LastActive = &now
	s.Behavior = datatypes.NewJSONType(b)
}

// ApplyTags bumps the preference count of each tag and keeps the list
// sorted by count descending, ties stable in first-seen order. Empty tag
// sets are a no-op.
func (s *UserStats) ApplyTags(tags []string) {
	if len(tags) == 0 {
		return
	}
	rs := s.Reminders.Data()
	for _, tag := range tags {
		found := false
		for i := range rs.PreferredTags {
			if rs.PreferredTags[i].Name == tag {
				rs.PreferredTags[i].Count++
				found = true
				break
			}
		}
		if !found {
			rs.PreferredTags = append(rs.PreferredTags, TagCount{Name: tag, Count: 1})
		}
	}
	sort.SliceStable(rs.PreferredTags, func(i, j int) bool {
		return rs.PreferredTags[i].Count > rs.PreferredTags[j].Count
	})
	s.Reminders = datatypes.NewJSONType(rs)
}

func (s *UserStats) ApplyCreated() {
	rs := s.Reminders.Data()
	rs.Created++
	s.Reminders = datatypes.NewJSONType(rs)
}

func (s *UserStats) ApplySnoozed() {
	rs := s.Reminders.Data()
	rs.Snoozed++
	s.Reminders = datatypes.NewJSONType(rs)
}

func (s *UserStats) ApplyDeleted() {
	rs := s.Reminders.Data()
	rs.Deleted++
	s.Reminders = datatypes.NewJSONType(rs)
}

// ClampScore bounds a percentage-style score to [0,100].
func ClampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
