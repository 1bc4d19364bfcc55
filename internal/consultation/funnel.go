// Package consultation runs the staged questionnaire that fills a profile:
// family, occasion, personality, budget and then sensitivity. Each answer
// fills exactly one field and moves the session forward.
package consultation

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/logger"
	"github.com/example/aromance/internal/models"
	"github.com/example/aromance/internal/profiles"
)

// ErrCompleted is returned when answering a finished consultation.
var ErrCompleted = errx.New(errx.KindConflict, "consultation already completed", nil)

var prompts = map[models.Stage]string{
	models.StageFamily:      "What kind of fragrances appeal to you? Something light and refreshing, or rich and warm?",
	models.StageOccasion:    "When would you wear your perfect fragrance? Daily, formal events, evenings or casual weekends?",
	models.StagePersonality: "How would your closest friends describe you?",
	models.StageBudget:      "What is a comfortable price range for a fragrance you would love?",
	models.StageSensitivity: "Do you have any sensitivities or allergies to strong scents or specific ingredients?",
	models.StageComplete:    "Your consultation is complete. Recommendations are ready.",
}

// Prompt returns the question asked at stage.
func Prompt(stage models.Stage) string {
	return prompts[stage]
}

// Turn is the outcome of one answer.
type Turn struct {
	Session  *models.Session
	Detected []string
	// Advanced is false when the answer did not fill the stage's field.
	Advanced bool
	Prompt   string
}

// Funnel drives consultations stored in a profiles.Repository.
type Funnel struct {
	repo        profiles.Repository
	classifiers map[models.Stage]Classifier
	now         func() time.Time
}

// Option customises a Funnel.
type Option func(*Funnel)

// WithClassifier replaces the classifier used at stage.
func WithClassifier(stage models.Stage, c Classifier) Option {
	return func(f *Funnel) { f.classifiers[stage] = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(f *Funnel) { f.now = now }
}

// NewFunnel constructs a Funnel with keyword classifiers for every stage.
func NewFunnel(repo profiles.Repository, opts ...Option) *Funnel {
	f := &Funnel{
		repo: repo,
		classifiers: map[models.Stage]Classifier{
			models.StageFamily:      NewKeywordClassifier(FamilyVocabulary...),
			models.StageOccasion:    NewKeywordClassifier(OccasionVocabulary...),
			models.StagePersonality: NewKeywordClassifier(PersonalityVocabulary...),
			models.StageBudget:      NewKeywordClassifier(BudgetVocabulary...),
			models.StageSensitivity: NewKeywordClassifier(SensitivityVocabulary...),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start opens a new consultation for userID.
func (f *Funnel) Start(ctx context.Context, userID string) (*Turn, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errx.Configf("user id is required")
	}

	session := &models.Session{
		BaseModel: models.NewBaseModel(f.now()),
		UserID:    userID,
		Stage:     models.StageFamily,
	}
	if err := f.repo.Put(ctx, session); err != nil {
		return nil, err
	}

	logger.Info().Str("session", session.ID.String()).Str("user", userID).Msg("consultation started")
	return &Turn{Session: session, Advanced: true, Prompt: Prompt(session.Stage)}, nil
}

// Session loads a consultation.
func (f *Funnel) Session(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return f.repo.Get(ctx, id)
}

// Answer applies text to the current stage of the consultation.
func (f *Funnel) Answer(ctx context.Context, id uuid.UUID, text string) (*Turn, error) {
	session, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrCompleted
	}

	stage := session.Stage
	detected := f.classify(stage, text)
	advanced := apply(session, stage, detected)
	if !advanced {
		return &Turn{Session: session, Prompt: Prompt(stage)}, nil
	}

	session.Stage = stage.Next()
	if session.Completed() {
		session.Archetype = Archetype(session.Profile.PersonalityTraits)
		session.Lifestyle = Lifestyle(session.Profile.Occasions)
	}
	session.UpdatedAt = f.now().UTC()

	if err := f.repo.Put(ctx, session); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("session", session.ID.String()).
		Str("stage", string(stage)).
		Strs("detected", detected).
		Str("next", string(session.Stage)).
		Msg("consultation answer applied")

	return &Turn{Session: session, Detected: detected, Advanced: true, Prompt: Prompt(session.Stage)}, nil
}

func (f *Funnel) classify(stage models.Stage, text string) []string {
	c, ok := f.classifiers[stage]
	if !ok {
		return nil
	}
	return c.Classify(text)
}

// apply writes the stage's field and reports whether the stage is done.
func apply(session *models.Session, stage models.Stage, detected []string) bool {
	p := &session.Profile
	switch stage {
	case models.StageFamily:
		if len(detected) == 0 {
			return false
		}
		p.PreferredFamilies = detected
	case models.StageOccasion:
		p.Occasions = detected
	case models.StagePersonality:
		p.PersonalityTraits = detected
	case models.StageBudget:
		p.BudgetTier = models.BudgetTierModerate
		if len(detected) > 0 {
			p.BudgetTier = models.BudgetTier(detected[0])
		}
	case models.StageSensitivity:
		p.Sensitivity = models.SensitivityNormal
		if len(detected) > 0 {
			p.Sensitivity = models.Sensitivity(detected[0])
		}
	}
	*p = p.Normalize()
	return true
}

// Archetype names the personality type implied by traits.
func Archetype(traits []string) string {
	switch {
	case slices.Contains(traits, "confident"):
		return "Bold Trendsetter"
	case slices.Contains(traits, "romantic"):
		return "Romantic Soul"
	case slices.Contains(traits, "professional"):
		return "Professional Elite"
	case slices.Contains(traits, "playful"):
		return "Cheerful Spirit"
	default:
		return "Versatile Character"
	}
}

// Lifestyle summarises the wear occasions.
func Lifestyle(occasions []string) string {
	switch {
	case slices.Contains(occasions, "daily"), slices.Contains(occasions, "formal"):
		return "professional"
	case slices.Contains(occasions, "evening"):
		return "social"
	case slices.Contains(occasions, "casual"):
		return "relaxed"
	default:
		return "balanced"
	}
}
