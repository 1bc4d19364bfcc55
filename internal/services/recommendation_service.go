// Package services composes stores, the consultation funnel and the
// recommendation engine into the operations the CLI exposes.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/aromance/internal/catalog"
	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/history"
	"github.com/example/aromance/internal/logger"
	"github.com/example/aromance/internal/models"
	"github.com/example/aromance/internal/profiles"
	"github.com/example/aromance/internal/recommender"
)

// SessionRecommendations is the result for a completed consultation.
type SessionRecommendations struct {
	Session *models.Session
	recommender.Result
}

// RecommendationService ranks a catalog snapshot for a profile.
type RecommendationService struct {
	catalog  catalog.Store
	sessions profiles.Repository
	notifier Notifier
	history  history.Store
	engine   *recommender.Engine
	now      func() time.Time
}

// NewRecommendationService creates a new RecommendationService. notifier may
// be nil.
func NewRecommendationService(store catalog.Store, sessions profiles.Repository, notifier Notifier, opts recommender.Options) *RecommendationService {
	return &RecommendationService{
		catalog:  store,
		sessions: sessions,
		notifier: notifier,
		engine:   recommender.NewEngine(opts),
		now:      time.Now,
	}
}

// WithHistory records every session batch in h.
func (s *RecommendationService) WithHistory(h history.Store) *RecommendationService {
	s.history = h
	return s
}

// Recommend ranks the current catalog for an ad-hoc profile.
func (s *RecommendationService) Recommend(ctx context.Context, profile models.Profile) (recommender.Result, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return recommender.Result{}, err
	}

	result, err := s.engine.Recommend(profile, products)
	if err != nil {
		return recommender.Result{}, err
	}

	logger.Debug().
		Int("considered", result.Considered).
		Int("eligible", result.Eligible).
		Int("returned", len(result.Recommendations)).
		Msg("recommendations computed")

	return result, nil
}

// ForSession ranks the catalog for a completed consultation, records the
// batch in the user's history and notifies. History and notification
// failures are logged, not returned.
func (s *RecommendationService) ForSession(ctx context.Context, id uuid.UUID) (*SessionRecommendations, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Completed() {
		return nil, errx.New(errx.KindConflict, "consultation not completed (stage "+string(session.Stage)+")", nil)
	}

	result, err := s.Recommend(ctx, session.Profile)
	if err != nil {
		return nil, err
	}

	if s.history != nil && len(result.Recommendations) > 0 {
		records := models.NewRecommendationRecords(session.UserID, session.ID.String(), result.Recommendations, s.now())
		if err := s.history.Append(ctx, records); err != nil {
			logger.Warn().Err(err).Str("session", session.ID.String()).Msg("recording recommendation history failed")
		}
	}

	if s.notifier != nil {
		n := RecommendationNotification{
			SessionID:       session.ID.String(),
			UserID:          session.UserID,
			Archetype:       session.Archetype,
			Summary:         result.Explanation,
			Recommendations: result.Recommendations,
		}
		if err := s.notifier.NotifyRecommendations(ctx, n); err != nil {
			logger.Warn().Err(err).Str("session", session.ID.String()).Msg("recommendation notification failed")
		}
	}

	logger.Info().
		Str("session", session.ID.String()).
		Int("returned", len(result.Recommendations)).
		Msg("session recommendations ready")

	return &SessionRecommendations{Session: session, Result: result}, nil
}

// History lists the recommendations a user was shown, newest batch first.
func (s *RecommendationService) History(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	if s.history == nil {
		return nil, errx.Configf("recommendation history is not configured")
	}
	if userID == "" {
		return nil, errx.Configf("user id is required")
	}
	return s.history.ForUser(ctx, userID, limit)
}
