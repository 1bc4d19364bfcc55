package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/aromance/internal/models"
)

func scored(id string, total float64) Scored {
	return Scored{Product: models.Product{ID: id}, Breakdown: Breakdown{Total: total}}
}

func rankedIDs(items []Scored) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Product.ID
	}
	return out
}

func TestRank(t *testing.T) {
	input := []Scored{
		scored("a", 0.55),
		scored("b", 0.91),
		scored("c", 0.39),
		scored("d", 0.55),
		scored("e", 0.72),
		scored("f", 0.40),
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"consultation flow", 3, []string{"b", "e", "a"}},
		{"standalone flow", 5, []string{"b", "e", "a", "d", "f"}},
		{"default when zero", 0, []string{"b", "e", "a"}},
		{"limit above size", 10, []string{"b", "e", "a", "d", "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rankedIDs(Rank(input, DefaultMinScore, tt.limit)))
		})
	}
}

func TestRank_ThresholdBeforeTruncation(t *testing.T) {
	input := []Scored{scored("low1", 0.1), scored("low2", 0.2), scored("ok", 0.45)}
	assert.Equal(t, []string{"ok"}, rankedIDs(Rank(input, 0.4, 1)))
}

func TestRank_EmptyWhenNothingPasses(t *testing.T) {
	assert.Empty(t, Rank([]Scored{scored("x", 0.2)}, 0.4, 3))
	assert.Empty(t, Rank(nil, 0.4, 3))
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	input := []Scored{scored("a", 0.5), scored("b", 0.9)}
	Rank(input, 0.4, 3)
	assert.Equal(t, []string{"a", "b"}, rankedIDs(input))
}
