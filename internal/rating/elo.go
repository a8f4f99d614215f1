package rating

import (
	"math"

	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// DefaultK is the fixed K-factor; one decisive duel moves a rating by at most
// this many points.
const DefaultK = 32.0

// Engine applies constant-K ELO updates to website pairs.
type Engine struct{ k float64 }

func NewEngine(k float64) *Engine {
	if k <= 0 {
		k = DefaultK
	}
	return &Engine{k: k}
}

// Expected returns the win probability of a against b under the ELO model.
func (e *Engine) Expected(a, b *domain.Website) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b.EloRating-a.EloRating)/400.0))
}

// Update applies one outcome in place. winnerID nil is a skip: nothing moves
// and both deltas are exactly zero. A decisive outcome shifts both ratings
// (deltas cancel out) and bumps the counters, keeping
// Wins+Losses == MatchesPlayed on both sides. Ratings stay unrounded floats.
func (e *Engine) Update(a, b *domain.Website, winnerID *int64) (deltaA, deltaB float64, err error) {
	if winnerID == nil {
		return 0, 0, nil
	}
	if *winnerID != a.ID && *winnerID != b.ID {
		return 0, 0, domain.ErrInvalidOutcome
	}

	expectedA := e.Expected(a, b)
	expectedB := 1.0 - expectedA

	scoreA := 0.0
	if *winnerID == a.ID {
		scoreA = 1.0
	}
	scoreB := 1.0 - scoreA

	deltaA = e.k * (scoreA - expectedA)
	deltaB = e.k * (scoreB - expectedB)

	a.EloRating += deltaA
	b.EloRating += deltaB
	a.MatchesPlayed++
	b.MatchesPlayed++
	if *winnerID == a.ID {
		a.Wins++
		b.Losses++
	} else {
		b.Wins++
		a.Losses++
	}
	return deltaA, deltaB, nil
}
