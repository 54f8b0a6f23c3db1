// Package metrics exposes the Prometheus counters for the reminder
// lifecycle and auth events, served on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RemindersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyremind_reminders_created_total",
		Help: "Reminders created.",
	})
	RemindersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyremind_reminders_completed_total",
		Help: "Reminders marked complete.",
	})
	RemindersSnoozed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyremind_reminders_snoozed_total",
		Help: "Reminders snoozed.",
	})
	RemindersDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyremind_reminders_deleted_total",
		Help: "Reminders deleted.",
	})
	UserRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyremind_user_registrations_total",
		Help: "Users registered.",
	})
	UserLogins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyremind_user_logins_total",
		Help: "Successful logins.",
	})
)

func Handler() http.Handler { return promhttp.Handler() }
