package consultation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
	"github.com/example/aromance/internal/profiles"
)

var t0 = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func newFunnel(t *testing.T) (*Funnel, *profiles.Memory) {
	t.Helper()
	repo := profiles.NewMemory()
	return NewFunnel(repo, WithClock(func() time.Time { return t0 })), repo
}

func TestFunnel_FullConsultation(t *testing.T) {
	f, repo := newFunnel(t)
	ctx := context.Background()

	turn, err := f.Start(ctx, "user-7")
	require.NoError(t, err)
	assert.Equal(t, models.StageFamily, turn.Session.Stage)
	assert.Equal(t, Prompt(models.StageFamily), turn.Prompt)
	id := turn.Session.ID

	answers := []struct {
		text     string
		detected []string
		next     models.Stage
	}{
		{"I love fresh citrus and sandalwood", []string{"fresh", "woody"}, models.StageOccasion},
		{"mostly for work and weekend hangouts", []string{"daily", "casual"}, models.StagePersonality},
		{"confident and a bit playful", []string{"confident", "playful"}, models.StageBudget},
		{"around 300k", []string{"moderate"}, models.StageSensitivity},
		{"none", nil, models.StageComplete},
	}
	for _, a := range answers {
		turn, err = f.Answer(ctx, id, a.text)
		require.NoError(t, err, a.text)
		assert.True(t, turn.Advanced, a.text)
		assert.Equal(t, a.detected, turn.Detected, a.text)
		assert.Equal(t, a.next, turn.Session.Stage, a.text)
	}

	stored, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.Completed())
	assert.Equal(t, models.Profile{
		PreferredFamilies: []string{"fresh", "woody"},
		PersonalityTraits: []string{"confident", "playful"},
		Occasions:         []string{"daily", "casual"},
		BudgetTier:        models.BudgetTierModerate,
		Sensitivity:       models.SensitivityNormal,
	}, stored.Profile)
	assert.Equal(t, "Bold Trendsetter", stored.Archetype)
	assert.Equal(t, "professional", stored.Lifestyle)
	assert.NoError(t, stored.Profile.Validate())

	_, err = f.Answer(ctx, id, "actually woody")
	assert.True(t, errors.Is(err, ErrCompleted))
	assert.True(t, errx.IsKind(err, errx.KindConflict))
}

func TestFunnel_FamilyStageHoldsWithoutMatch(t *testing.T) {
	f, _ := newFunnel(t)
	ctx := context.Background()

	turn, err := f.Start(ctx, "user-1")
	require.NoError(t, err)

	turn, err = f.Answer(ctx, turn.Session.ID, "hmm, no idea")
	require.NoError(t, err)
	assert.False(t, turn.Advanced)
	assert.Equal(t, models.StageFamily, turn.Session.Stage)
	assert.Equal(t, Prompt(models.StageFamily), turn.Prompt)
	assert.Empty(t, turn.Session.Profile.PreferredFamilies)
}

func TestFunnel_DefaultsForBudgetAndSensitivity(t *testing.T) {
	f, _ := newFunnel(t)
	ctx := context.Background()

	turn, err := f.Start(ctx, "user-2")
	require.NoError(t, err)
	id := turn.Session.ID

	for _, text := range []string{"floral please", "no idea", "no idea", "whatever"} {
		_, err = f.Answer(ctx, id, text)
		require.NoError(t, err)
	}

	turn, err = f.Answer(ctx, id, "I get a reaction to some flowers")
	require.NoError(t, err)

	p := turn.Session.Profile
	assert.Equal(t, models.BudgetTierModerate, p.BudgetTier)
	assert.Equal(t, models.SensitivityAllergic, p.Sensitivity)
	assert.Empty(t, p.Occasions)
	assert.Empty(t, p.PersonalityTraits)
	assert.Equal(t, "Versatile Character", turn.Session.Archetype)
	assert.Equal(t, "balanced", turn.Session.Lifestyle)
}

func TestFunnel_Errors(t *testing.T) {
	f, _ := newFunnel(t)
	ctx := context.Background()

	_, err := f.Start(ctx, "  ")
	assert.True(t, errx.IsKind(err, errx.KindConfig))

	_, err = f.Answer(ctx, uuid.New(), "fresh")
	assert.True(t, errx.IsKind(err, errx.KindNotFound))
}

type fixedClassifier []string

func (c fixedClassifier) Classify(string) []string { return c }

func TestFunnel_CustomClassifier(t *testing.T) {
	repo := profiles.NewMemory()
	f := NewFunnel(repo, WithClassifier(models.StageFamily, fixedClassifier{"Aquatic"}))
	ctx := context.Background()

	turn, err := f.Start(ctx, "user-3")
	require.NoError(t, err)

	turn, err = f.Answer(ctx, turn.Session.ID, "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"aquatic"}, turn.Session.Profile.PreferredFamilies)
}

func TestArchetypeAndLifestyle(t *testing.T) {
	assert.Equal(t, "Romantic Soul", Archetype([]string{"playful", "romantic"}))
	assert.Equal(t, "Professional Elite", Archetype([]string{"professional"}))
	assert.Equal(t, "Cheerful Spirit", Archetype([]string{"playful"}))
	assert.Equal(t, "social", Lifestyle([]string{"evening"}))
	assert.Equal(t, "relaxed", Lifestyle([]string{"casual", "party"}))
	assert.Equal(t, "professional", Lifestyle([]string{"casual", "formal"}))
}
