package services

import (
	"context"

	"github.com/example/aromance/internal/models"
)

// RecommendationNotification describes a finished recommendation batch.
type RecommendationNotification struct {
	SessionID       string
	UserID          string
	Archetype       string
	Summary         string
	Recommendations []models.Recommendation
}

// Notifier is told about every session-based recommendation batch.
type Notifier interface {
	NotifyRecommendations(ctx context.Context, n RecommendationNotification) error
}
