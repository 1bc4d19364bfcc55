package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

func freshProfile() models.Profile {
	return models.Profile{
		PreferredFamilies: []string{"fresh"},
		PersonalityTraits: []string{"energetic"},
		Occasions:         []string{"daily"},
		BudgetTier:        models.BudgetTierModerate,
		Sensitivity:       models.SensitivityNormal,
	}
}

func TestScorer_PerfectMatchIsClamped(t *testing.T) {
	product := models.Product{
		ID:              "p1",
		Family:          "fresh",
		PersonalityTags: []string{"energetic", "casual"},
		OccasionTags:    []string{"daily", "sport"},
		Price:           295_000,
		Heritage:        true,
		Certified:       true,
		ClimateSuited:   true,
		InStock:         true,
	}

	b, err := NewScorer(DefaultWeights()).Score(freshProfile(), product)
	require.NoError(t, err)

	assert.InDelta(t, 0.30, b.Family, 1e-9)
	assert.InDelta(t, 0.25, b.Personality, 1e-9)
	assert.InDelta(t, 0.20, b.Occasion, 1e-9)
	assert.InDelta(t, 0.15, b.Budget, 1e-9)
	assert.InDelta(t, 1.0, b.Total, 1e-9)
	assert.LessOrEqual(t, b.Total, 1.0)
	assert.True(t, b.FamilyMatch)
	assert.Equal(t, []string{"energetic"}, b.SharedTraits)
}

func TestScorer_TagsCompareCaseInsensitively(t *testing.T) {
	product := models.Product{
		ID:              "p1",
		Family:          "Fresh",
		PersonalityTags: []string{" Energetic"},
		OccasionTags:    []string{"DAILY"},
		Price:           295_000,
	}

	b, err := NewScorer(DefaultWeights()).Score(freshProfile(), product)
	require.NoError(t, err)

	assert.InDelta(t, 0.25, b.Personality, 1e-9)
	assert.InDelta(t, 0.20, b.Occasion, 1e-9)
	assert.InDelta(t, 0.90, b.Total, 1e-9)
	assert.Equal(t, []string{"energetic"}, b.SharedTraits)
}

func TestScorer_NoOverlapOverBudget(t *testing.T) {
	product := models.Product{ID: "p2", Family: "woody", Price: 600_000, InStock: true}

	b, err := NewScorer(DefaultWeights()).Score(freshProfile(), product)
	require.NoError(t, err)

	assert.InDelta(t, 0.06, b.Total, 1e-9)
	assert.False(t, b.FamilyMatch)
	assert.Empty(t, b.SharedTraits)
}

func TestScorer_BudgetPenaltyIsScaledNotZero(t *testing.T) {
	profile := freshProfile()
	profile.BudgetTier = models.BudgetTierBudget
	product := models.Product{
		Family:          "fresh",
		PersonalityTags: []string{"energetic"},
		OccasionTags:    []string{"daily"},
		Price:           250_000,
		Heritage:        true,
		Certified:       true,
		ClimateSuited:   true,
	}

	b, err := NewScorer(DefaultWeights()).Score(profile, product)
	require.NoError(t, err)

	assert.InDelta(t, 0.045, b.Budget, 1e-9)
	assert.InDelta(t, 0.895, b.Total, 1e-9)
}

func TestScorer_PartialOverlapRatios(t *testing.T) {
	profile := models.Profile{
		PersonalityTraits: []string{"romantic", "confident", "playful", "professional"},
		Occasions:         []string{"daily", "evening"},
		BudgetTier:        models.BudgetTierFlexible,
		Sensitivity:       models.SensitivityNormal,
	}
	product := models.Product{
		Family:          "floral",
		PersonalityTags: []string{"romantic", "confident"},
		OccasionTags:    []string{"evening", "evening"},
	}

	b, err := NewScorer(DefaultWeights()).Score(profile, product)
	require.NoError(t, err)

	assert.InDelta(t, 0.125, b.Personality, 1e-9)
	assert.InDelta(t, 0.10, b.Occasion, 1e-9)
	assert.InDelta(t, 0.12, b.Budget, 1e-9)
	assert.Zero(t, b.Family)
}

func TestScorer_EmptySetsDoNotDivideByZero(t *testing.T) {
	profile := models.Profile{BudgetTier: models.BudgetTierFlexible, Sensitivity: models.SensitivityNormal}
	product := models.Product{Family: "fresh", PersonalityTags: []string{"bold"}, OccasionTags: []string{"daily"}}

	b, err := NewScorer(DefaultWeights()).Score(profile, product)
	require.NoError(t, err)

	assert.Zero(t, b.Family)
	assert.Zero(t, b.Personality)
	assert.Zero(t, b.Occasion)
	assert.InDelta(t, 0.12, b.Total, 1e-9)
}

func TestScorer_FamilySubstring(t *testing.T) {
	profile := freshProfile()
	profile.PreferredFamilies = []string{"floral"}

	b, err := NewScorer(DefaultWeights()).Score(profile, models.Product{Family: "fresh floral", Price: 200_000})
	require.NoError(t, err)
	assert.True(t, b.FamilyMatch)
	assert.InDelta(t, 0.30, b.Family, 1e-9)
}

func TestScorer_UnknownTier(t *testing.T) {
	profile := freshProfile()
	profile.BudgetTier = "cheapish"

	_, err := NewScorer(DefaultWeights()).Score(profile, models.Product{})
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.KindConfig))
}

func TestBudgetFit(t *testing.T) {
	tests := []struct {
		tier  models.BudgetTier
		price int64
		want  float64
	}{
		{models.BudgetTierBudget, 89_000, 1.0},
		{models.BudgetTierBudget, 100_000, 1.0},
		{models.BudgetTierBudget, 150_000, 0.7},
		{models.BudgetTierBudget, 150_001, 0.3},
		{models.BudgetTierModerate, 50_000, 0.8},
		{models.BudgetTierModerate, 100_000, 1.0},
		{models.BudgetTierModerate, 300_000, 1.0},
		{models.BudgetTierModerate, 400_000, 0.8},
		{models.BudgetTierModerate, 400_001, 0.4},
		{models.BudgetTierPremium, 150_000, 0.5},
		{models.BudgetTierPremium, 200_000, 0.8},
		{models.BudgetTierPremium, 300_000, 1.0},
		{models.BudgetTierPremium, 500_000, 1.0},
		{models.BudgetTierPremium, 600_000, 0.8},
		{models.BudgetTierPremium, 650_000, 0.5},
		{models.BudgetTierLuxury, 500_000, 1.0},
		{models.BudgetTierLuxury, 300_000, 0.7},
		{models.BudgetTierLuxury, 299_999, 0.4},
		{models.BudgetTierFlexible, 1, 0.8},
		{models.BudgetTierFlexible, 9_000_000, 0.8},
	}

	for _, tt := range tests {
		got, err := BudgetFit(tt.tier, tt.price)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "%s @ %d", tt.tier, tt.price)
	}
}
