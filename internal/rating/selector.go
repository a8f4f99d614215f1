package rating

import (
	"math/rand"

	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// Selector picks the next pair to put in front of the judge. An interface so
// a smarter policy (say, preferring close ratings for more informative duels)
// can be swapped in without touching callers.
type Selector interface {
	Select(ws []domain.Website) (a, b domain.Website, err error)
}

// RandomSelector draws two distinct websites uniformly, ignoring ratings.
type RandomSelector struct{}

func (RandomSelector) Select(ws []domain.Website) (domain.Website, domain.Website, error) {
	if len(ws) < 2 {
		return domain.Website{}, domain.Website{}, domain.ErrInsufficientWebsites
	}
	i := rand.Intn(len(ws))
	j := rand.Intn(len(ws) - 1)
	if j >= i {
		j++
	}
	return ws[i], ws[j], nil
}
