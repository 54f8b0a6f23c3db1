package model

import (
	"strings"

	"buddyremind/internal/apperr"
)

const (
	PersonalityHelper      = "helper"
	PersonalityMotivator   = "motivator"
	PersonalityOrganizer   = "organizer"
	PersonalityCheerleader = "cheerleader"
	PersonalityCoach       = "coach"
	PersonalityZen         = "zen"
	PersonalityCustom      = "custom"
)

// Buddy message event kinds.
const (
	EventGreeting      = "greeting"
	EventReminder      = "reminder"
	EventEncouragement = "encouragement"
	EventCompletion    = "completion"
	EventOverdue       = "overdue"
	EventInactivity    = "inactivity"
)

func ValidPersonality(p string) bool {
	switch p {
	case PersonalityHelper, PersonalityMotivator, PersonalityOrganizer,
		PersonalityCheerleader, PersonalityCoach, PersonalityZen, PersonalityCustom:
		return true
	}
	return false
}

func (b *Buddy) Validate() error {
	if b.Name == "" {
		return apperr.Validation("please provide a name for the buddy")
	}
	if len(b.Name) > 50 {
		return apperr.Validation("name cannot be more than 50 characters")
	}
	if !ValidPersonality(b.Personality) {
		return apperr.Validation("invalid personality %q", b.Personality)
	}
	if b.Personality == PersonalityCustom && len(b.CustomTraits) == 0 {
		return apperr.Validation("custom traits are required for custom personality")
	}
	return nil
}

// MessageFor picks a template for the given event kind and substitutes the
// reminder title. The pick is deterministic (title length modulo template
// count) so the same reminder always gets the same phrasing.
func (b *Buddy) MessageFor(event, title string) string {
	templates := b.Messages.Data().templatesFor(event)
	if len(templates) == 0 {
		return ""
	}
	msg := templates[len(title)%len(templates)]
	return strings.ReplaceAll(msg, "{title}", title)
}

func (m MessageSet) templatesFor(event string) []string {
	switch event {
	case EventGreeting:
		return m.Greeting
	case EventReminder:
		return m.Reminder
	case EventEncouragement:
		return m.Encouragement
	case EventCompletion:
		return m.Completion
	case EventOverdue:
		return m.Overdue
	case EventInactivity:
		return m.Inactivity
	}
	return nil
}

// DefaultMessages returns the stock template set for a built-in personality.
// Personalities without a stock set fall back to the helper set.
func DefaultMessages(personality string) MessageSet {
	switch personality {
	case PersonalityMotivator:
		return MessageSet{
			Greeting: []string{
				"Let's crush those tasks today!",
				"Hey there, superstar! Ready to be amazing?",
				"Today is a perfect day for productivity!",
			},
			Reminder: []string{
				"You've got {title} coming up - I know you'll ace it!",
				"Time to shine! {title} is on your schedule.",
				"{title} is on the horizon - you're going to do great!",
			},
			Encouragement: []string{
				"You're unstoppable! Keep pushing forward!",
				"Remember why you started - you're making amazing progress!",
				"Each task completed is a victory. You're winning!",
			},
			Completion: []string{
				"BOOM! {title} completed! You're on fire!",
				"You just conquered {title}! What's next on your path to greatness?",
				"That's what I'm talking about! {title} - DONE!",
			},
			Overdue: []string{
				"Hey champion, {title} slipped by. Let's regroup and conquer it!",
				"No sweat about missing {title}. Champions adjust and keep moving!",
				"{title} is overdue, but that's just a temporary setback. Let's reschedule and win!",
			},
			Inactivity: []string{
				"Hey rockstar! Missing your energy around here!",
				"Time to get back in the game! I know you've got what it takes!",
				"The comeback is always stronger than the setback. Ready to return to greatness?",
			},
		}
	default:
		return MessageSet{
			Greeting: []string{
				"Hi there! Ready to get things done today?",
				"Hello! I'm here to help you stay organized.",
				"Welcome back! What would you like to accomplish today?",
			},
			Reminder: []string{
				"Just a friendly reminder about {title}.",
				"Don't forget about {title}.",
				"Remember, you have {title} coming up.",
			},
			Encouragement: []string{
				"You're doing well! Keep it up.",
				"You've got this!",
				"I believe in you - you can do it!",
			},
			Completion: []string{
				"Great job completing {title}!",
				"Excellent! One more task completed.",
				"Well done on finishing {title}!",
			},
			Overdue: []string{
				"It looks like {title} is overdue. Would you like to reschedule it?",
				"You missed {title}. No worries, let's find a new time for it.",
				"{title} has passed. Should we move it to today's list?",
			},
			Inactivity: []string{
				"I haven't seen you in a while. Everything going okay?",
				"It's been a few days since you've checked in. Need help getting back on track?",
				"Welcome back! Ready to get organized again?",
			},
		}
	}
}
