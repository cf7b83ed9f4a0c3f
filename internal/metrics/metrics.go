// Package metrics exposes the prometheus collectors of the social write path.
package metrics

import (
	"recipebox/internal/apperr"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SocialActions counts like, favorite and comment writes by outcome.
	SocialActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_social_actions_total",
		Help: "Social interaction writes by action and outcome.",
	}, []string{"action", "outcome"})

	// NotificationsEmitted counts committed notifications by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_notifications_emitted_total",
		Help: "Notifications committed by type.",
	}, []string{"type"})
)

// Outcome maps an operation result onto a low-cardinality label value.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		return "validation"
	case apperr.ErrConflict:
		return "conflict"
	case apperr.ErrNotFound:
		return "not_found"
	case apperr.ErrUnauthenticated:
		return "unauthenticated"
	case apperr.ErrForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// ObserveSocial records one social write.
func ObserveSocial(action string, err error) {
	SocialActions.WithLabelValues(action, Outcome(err)).Inc()
}

// ObserveNotification records one committed notification.
func ObserveNotification(notificationType string) {
	NotificationsEmitted.WithLabelValues(notificationType).Inc()
}
