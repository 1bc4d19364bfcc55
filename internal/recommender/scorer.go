package recommender

import (
	"strings"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
)

// Weights are the term weights of the compatibility score.
type Weights struct {
	Family      float64
	Personality float64
	Occasion    float64
	Budget      float64
	Heritage    float64
	Certified   float64
	Climate     float64
}

// DefaultWeights returns the production weights. The four main terms sum to
// 0.90 and the bonuses to 0.10; the total is still clamped.
func DefaultWeights() Weights {
	return Weights{
		Family:      0.30,
		Personality: 0.25,
		Occasion:    0.20,
		Budget:      0.15,
		Heritage:    0.05,
		Certified:   0.03,
		Climate:     0.02,
	}
}

// Breakdown is a scored (profile, product) pair with every weighted term.
type Breakdown struct {
	Family       float64
	Personality  float64
	Occasion     float64
	Budget       float64
	Heritage     float64
	Certified    float64
	Climate      float64
	Total        float64
	FamilyMatch  bool
	SharedTraits []string
}

// Scorer computes compatibility scores.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer with the given weights.
func NewScorer(w Weights) Scorer {
	return Scorer{weights: w}
}

// Score computes the compatibility of product with profile. The profile is
// expected to be normalised; an unknown budget tier is a KindConfig error.
func (s Scorer) Score(profile models.Profile, product models.Product) (Breakdown, error) {
	fit, err := BudgetFit(profile.BudgetTier, product.Price)
	if err != nil {
		return Breakdown{}, err
	}

	var b Breakdown
	for _, family := range profile.PreferredFamilies {
		if product.FamilyContains(family) {
			b.FamilyMatch = true
			b.Family = s.weights.Family
			break
		}
	}

	b.SharedTraits = intersect(profile.PersonalityTraits, product.PersonalityTags)
	b.Personality = ratio(s.weights.Personality, len(b.SharedTraits), len(profile.PersonalityTraits))
	b.Occasion = ratio(s.weights.Occasion, len(intersect(profile.Occasions, product.OccasionTags)), len(profile.Occasions))
	b.Budget = s.weights.Budget * fit

	if product.Heritage {
		b.Heritage = s.weights.Heritage
	}
	if product.Certified {
		b.Certified = s.weights.Certified
	}
	if product.ClimateSuited {
		b.Climate = s.weights.Climate
	}

	b.Total = clamp(b.Family + b.Personality + b.Occasion + b.Budget + b.Heritage + b.Certified + b.Climate)
	return b, nil
}

// BudgetFit returns how well price sits in the tier's ideal band, in [0, 1].
func BudgetFit(tier models.BudgetTier, price int64) (float64, error) {
	switch tier {
	case models.BudgetTierBudget:
		switch {
		case price <= 100_000:
			return 1.0, nil
		case price <= 150_000:
			return 0.7, nil
		default:
			return 0.3, nil
		}
	case models.BudgetTierModerate:
		switch {
		case price >= 100_000 && price <= 300_000:
			return 1.0, nil
		case price <= 400_000:
			return 0.8, nil
		default:
			return 0.4, nil
		}
	case models.BudgetTierPremium:
		switch {
		case price >= 300_000 && price <= 500_000:
			return 1.0, nil
		case price >= 200_000 && price <= 600_000:
			return 0.8, nil
		default:
			return 0.5, nil
		}
	case models.BudgetTierLuxury:
		switch {
		case price >= 500_000:
			return 1.0, nil
		case price >= 300_000:
			return 0.7, nil
		default:
			return 0.4, nil
		}
	case models.BudgetTierFlexible:
		return 0.8, nil
	}
	return 0, errx.Configf("unknown budget tier %q", tier)
}

// intersect returns the distinct elements of a that also occur in b, in a's
// order. Elements compare case-insensitively after trimming.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[foldTag(v)] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		key := foldTag(v)
		if _, ok := set[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func foldTag(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func ratio(weight float64, overlap, size int) float64 {
	if size < 1 {
		size = 1
	}
	r := float64(overlap) / float64(size)
	if r > 1 {
		r = 1
	}
	return weight * r
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
