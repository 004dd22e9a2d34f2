// Package metrics registers the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successful post inserts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_posts_created_total",
		Help: "Number of posts created.",
	})

	// CommentsCreated counts successful comment inserts.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_comments_created_total",
		Help: "Number of comments created.",
	})

	// NotificationsFannedOut counts notifications produced by comment fan-out.
	NotificationsFannedOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_notifications_fanned_out_total",
		Help: "Number of notifications created by comment fan-out.",
	})

	// LikesApplied counts successful like increments.
	LikesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ripple_likes_applied_total",
		Help: "Number of like increments applied.",
	})

	// WebhookEvents counts identity webhook deliveries by event type and
	// outcome.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_identity_webhook_events_total",
		Help: "Identity webhook deliveries by event type and outcome.",
	}, []string{"type", "outcome"})
)
