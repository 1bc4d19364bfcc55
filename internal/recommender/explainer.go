package recommender

import (
	"fmt"
	"strings"

	"github.com/example/aromance/internal/models"
)

// ReasonSeparator joins reasoning fragments.
const ReasonSeparator = " • "

// Score tier labels, always the first reasoning fragment.
const (
	LabelStrong      = "strong match"
	LabelGood        = "good match"
	LabelAlternative = "alternative option"
)

// Explainer formats human-readable justifications. It makes no decisions.
type Explainer struct {
	MaxReasons int
}

// TierLabel maps a score to its tier label.
func TierLabel(score float64) string {
	switch {
	case score > 0.8:
		return LabelStrong
	case score > 0.6:
		return LabelGood
	default:
		return LabelAlternative
	}
}

// Reasoning builds the ordered, de-duplicated fragment list for one
// recommendation and joins it with ReasonSeparator.
func (e Explainer) Reasoning(product models.Product, b Breakdown) string {
	return strings.Join(e.Reasons(product, b), ReasonSeparator)
}

// Reasons returns the fragments Reasoning joins.
func (e Explainer) Reasons(product models.Product, b Breakdown) []string {
	candidates := []string{TierLabel(b.Total)}
	if b.FamilyMatch {
		candidates = append(candidates, "matches preferred family "+product.Family)
	}
	if len(b.SharedTraits) > 0 {
		candidates = append(candidates, "aligns with traits "+strings.Join(b.SharedTraits, ", "))
	}
	if product.Heritage {
		candidates = append(candidates, "local heritage brand")
	}
	if product.Certified {
		candidates = append(candidates, "halal certified")
	}

	limit := e.MaxReasons
	if limit < 1 {
		limit = DefaultMaxReasons
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, limit)
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Summary is the aggregate explanation of a batch. It names the top
// recommendation and counts heritage and certified items. An empty batch
// yields an empty string; "no matches" copy belongs to the caller.
func (e Explainer) Summary(profile models.Profile, recs []models.Recommendation) string {
	if len(recs) == 0 {
		return ""
	}

	var sb strings.Builder
	if len(profile.PersonalityTraits) > 0 || len(profile.PreferredFamilies) > 0 {
		fmt.Fprintf(&sb, "Selected %d for %s personality and %s families. ",
			len(recs), orDefault(profile.PersonalityTraits, "versatile"), orDefault(profile.PreferredFamilies, "any"))
	} else {
		fmt.Fprintf(&sb, "Selected %d. ", len(recs))
	}

	top := recs[0]
	fmt.Fprintf(&sb, "Top recommendation: %s with %d%% compatibility.", top.Name, int(top.Score*100+0.5))

	var heritage, certified int
	for _, r := range recs {
		if r.Heritage {
			heritage++
		}
		if r.Certified {
			certified++
		}
	}
	if heritage > 0 {
		fmt.Fprintf(&sb, " %d of %d are local heritage brands.", heritage, len(recs))
	}
	if certified > 0 {
		fmt.Fprintf(&sb, " %d of %d are halal certified.", certified, len(recs))
	}
	return sb.String()
}

// Alternatives suggests directions beyond the current profile: neighbouring
// families and the adjacent budget tier.
func (e Explainer) Alternatives(profile models.Profile) []string {
	var out []string
	for _, family := range profile.PreferredFamilies {
		if next, ok := neighbourFamilies[family]; ok {
			out = append(out, fmt.Sprintf("explore %s scents as a variation on %s", next, family))
		}
	}

	switch profile.BudgetTier {
	case models.BudgetTierBudget:
		out = append(out, "mid-range options usually add longevity and complexity")
	case models.BudgetTierLuxury:
		out = append(out, "artisanal niche brands offer distinctive signature scents")
	}

	return append(out, "a wardrobe of two or three scents covers different moods and occasions")
}

var neighbourFamilies = map[string]string{
	"fresh":    "floral",
	"floral":   "oriental",
	"fruity":   "gourmand",
	"woody":    "oriental",
	"oriental": "woody",
	"gourmand": "fruity",
}

func orDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
