package models

import (
	"slices"
	"strings"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/validation"
)

// BudgetTier is a coarse price bracket.
type BudgetTier string

const (
	BudgetTierBudget   BudgetTier = "budget"
	BudgetTierModerate BudgetTier = "moderate"
	BudgetTierPremium  BudgetTier = "premium"
	BudgetTierLuxury   BudgetTier = "luxury"
	BudgetTierFlexible BudgetTier = "flexible"
)

// Ceiling returns the hard price ceiling of the tier. The second result is
// false when the tier has no ceiling (luxury, flexible) or is unknown.
func (t BudgetTier) Ceiling() (int64, bool) {
	switch t {
	case BudgetTierBudget:
		return 200_000, true
	case BudgetTierModerate:
		return 400_000, true
	case BudgetTierPremium:
		return 600_000, true
	default:
		return 0, false
	}
}

// Valid reports whether t is a known tier.
func (t BudgetTier) Valid() bool {
	switch t {
	case BudgetTierBudget, BudgetTierModerate, BudgetTierPremium, BudgetTierLuxury, BudgetTierFlexible:
		return true
	}
	return false
}

// Sensitivity is a filtering hint collected at the end of a consultation.
type Sensitivity string

const (
	SensitivityNormal         Sensitivity = "normal"
	SensitivitySensitive      Sensitivity = "sensitive"
	SensitivityAllergic       Sensitivity = "allergic"
	SensitivityHypoallergenic Sensitivity = "hypoallergenic"
	SensitivityCautious       Sensitivity = "cautious"
)

// Valid reports whether s is a known sensitivity.
func (s Sensitivity) Valid() bool {
	switch s {
	case SensitivityNormal, SensitivitySensitive, SensitivityAllergic, SensitivityHypoallergenic, SensitivityCautious:
		return true
	}
	return false
}

// Profile is a user's collected fragrance preferences.
type Profile struct {
	PreferredFamilies []string    `json:"preferred_families"`
	PersonalityTraits []string    `json:"personality_traits"`
	Occasions         []string    `json:"occasions"`
	BudgetTier        BudgetTier  `json:"budget_tier" validate:"required,oneof=budget moderate premium luxury flexible"`
	Sensitivity       Sensitivity `json:"sensitivity" validate:"required,oneof=normal sensitive allergic hypoallergenic cautious"`
}

// Validate fails with a KindConfig error when an enum field is unknown.
func (p Profile) Validate() error {
	if err := validation.Struct(p); err != nil {
		return errx.New(errx.KindConfig, "invalid profile", err)
	}
	return nil
}

// Normalize returns a copy with lowercased, trimmed, de-duplicated tag sets.
// First-seen order is kept so explanations stay deterministic.
func (p Profile) Normalize() Profile {
	return Profile{
		PreferredFamilies: normalizeTags(p.PreferredFamilies),
		PersonalityTraits: normalizeTags(p.PersonalityTraits),
		Occasions:         normalizeTags(p.Occasions),
		BudgetTier:        BudgetTier(strings.ToLower(strings.TrimSpace(string(p.BudgetTier)))),
		Sensitivity:       Sensitivity(strings.ToLower(strings.TrimSpace(string(p.Sensitivity)))),
	}
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.PreferredFamilies = slices.Clone(p.PreferredFamilies)
	p.PersonalityTraits = slices.Clone(p.PersonalityTraits)
	p.Occasions = slices.Clone(p.Occasions)
	return p
}
