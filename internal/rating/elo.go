// Package rating implements the per-topic Elo rating that drives
// question difficulty. Ratings start at 1200 and move after every
// graded round using a fixed-K pairwise update against the question's
// difficulty rating.
package rating

import "math"

// KFactor is the fixed Elo K used for every update.
const KFactor = 32

// Default is the rating assigned to a topic the first time it is seen.
const Default = 1200.0

// Update applies one Elo update and returns the new rating.
// The question's difficulty rating plays the role of the opponent.
// The result is rounded to the nearest integer value (half away from
// zero); the expected score is irrational for unequal inputs, so ties
// at exactly .5 do not occur in practice. No clamping: a long run of
// extreme losses can push a rating negative, and that is preserved.
func Update(current float64, won bool, opponent float64) float64 {
	expected := 1 / (1 + math.Pow(10, (opponent-current)/400))
	actual := 0.0
	if won {
		actual = 1.0
	}
	return math.Round(current + KFactor*(actual-expected))
}
