package recommender

import (
	"github.com/example/aromance/internal/models"
)

const (
	// DefaultLimit is the top-N of the consultation-completion flow.
	DefaultLimit = 3
	// StandaloneLimit is the top-N of the standalone recommendation flow.
	StandaloneLimit = 5
	// DefaultMinScore is the minimum score a product needs to be listed.
	DefaultMinScore = 0.4
	// DefaultMaxReasons caps reasoning fragments per recommendation.
	DefaultMaxReasons = 4
)

// Options tune an Engine. A zero Limit, MaxReasons or Weights falls back to
// the default; MinScore is used as given.
type Options struct {
	Limit      int
	MinScore   float64
	MaxReasons int
	Weights    Weights
}

// DefaultOptions returns the consultation-flow configuration.
func DefaultOptions() Options {
	return Options{
		Limit:      DefaultLimit,
		MinScore:   DefaultMinScore,
		MaxReasons: DefaultMaxReasons,
		Weights:    DefaultWeights(),
	}
}

// StandaloneOptions returns the standalone recommendation-flow configuration.
func StandaloneOptions() Options {
	opts := DefaultOptions()
	opts.Limit = StandaloneLimit
	return opts
}

// Result is the output of one ranking call.
type Result struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Explanation     string                  `json:"explanation"`
	Alternatives    []string                `json:"alternatives"`
	Considered      int                     `json:"considered"`
	Eligible        int                     `json:"eligible"`
}

// Engine runs Filter -> Score -> Rank -> Explain.
type Engine struct {
	opts      Options
	scorer    Scorer
	explainer Explainer
}

// NewEngine creates an Engine.
func NewEngine(opts Options) *Engine {
	if opts.Limit < 1 {
		opts.Limit = DefaultLimit
	}
	if opts.MaxReasons < 1 {
		opts.MaxReasons = DefaultMaxReasons
	}
	if opts.Weights == (Weights{}) {
		opts.Weights = DefaultWeights()
	}
	return &Engine{
		opts:      opts,
		scorer:    NewScorer(opts.Weights),
		explainer: Explainer{MaxReasons: opts.MaxReasons},
	}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Recommend ranks catalog against profile. Both sides are normalised before
// matching, so tag case never affects the score. An invalid profile fails
// with a KindConfig error; an empty catalog yields an empty result.
func (e *Engine) Recommend(profile models.Profile, catalog []models.Product) (Result, error) {
	profile = profile.Normalize()
	if err := profile.Validate(); err != nil {
		return Result{}, err
	}

	normalized := make([]models.Product, len(catalog))
	for i, product := range catalog {
		normalized[i] = product.Normalize()
	}
	eligible := Filter(profile, normalized)

	scored := make([]Scored, 0, len(eligible))
	for _, product := range eligible {
		b, err := e.scorer.Score(profile, product)
		if err != nil {
			return Result{}, err
		}
		scored = append(scored, Scored{Product: product, Breakdown: b})
	}

	ranked := Rank(scored, e.opts.MinScore, e.opts.Limit)

	recs := make([]models.Recommendation, 0, len(ranked))
	for _, s := range ranked {
		recs = append(recs, models.Recommendation{
			ProductID: s.Product.ID,
			Name:      s.Product.Name,
			Brand:     s.Product.Brand,
			Family:    s.Product.Family,
			Price:     s.Product.Price,
			Score:     s.Score(),
			Reasoning: e.explainer.Reasoning(s.Product, s.Breakdown),
			Heritage:  s.Product.Heritage,
			Certified: s.Product.Certified,
		})
	}

	return Result{
		Recommendations: recs,
		Explanation:     e.explainer.Summary(profile, recs),
		Alternatives:    e.explainer.Alternatives(profile),
		Considered:      len(catalog),
		Eligible:        len(eligible),
	}, nil
}
