// Package recommender ranks catalog products against a consultation profile.
//
// The pipeline is Filter -> Score -> Rank -> Explain. Every step is a pure
// function of its inputs: nothing here performs I/O, holds mutable state or
// needs synchronisation, so an Engine may be shared across goroutines as long
// as each call gets its own Profile and a catalog snapshot nobody mutates
// while the call runs.
//
// Score is a weighted sum:
//
//	family      0.30  any preferred family is a substring of product.family
//	personality 0.25  |traits ∩ tags| / max(1, |traits|)
//	occasion    0.20  |occasions ∩ tags| / max(1, |occasions|)
//	budget      0.15  BudgetFit(tier, price)
//	heritage    0.05
//	certified   0.03
//	climate     0.02
//
// The total is clamped to [0, 1].
package recommender
