package recommender

import (
	"sort"

	"github.com/example/aromance/internal/models"
)

// Scored pairs a product with its score breakdown.
type Scored struct {
	Product   models.Product
	Breakdown Breakdown
}

// Score is the clamped total.
func (s Scored) Score() float64 {
	return s.Breakdown.Total
}

// Rank drops items below minScore, sorts the rest by descending score and
// truncates to limit. Equal scores keep their input order. A limit below one
// means DefaultLimit.
func Rank(scored []Scored, minScore float64, limit int) []Scored {
	if limit < 1 {
		limit = DefaultLimit
	}

	kept := make([]Scored, 0, len(scored))
	for _, s := range scored {
		if s.Score() < minScore {
			continue
		}
		kept = append(kept, s)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score() > kept[j].Score()
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
