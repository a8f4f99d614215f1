package rating_test

import (
	"math"
	"testing"

	"github.com/project-caesar00/caesar-elo/internal/domain"
	"github.com/project-caesar00/caesar-elo/internal/rating"
)

func site(id int64, elo float64) *domain.Website {
	return &domain.Website{ID: id, URL: "https://example.test", EloRating: elo}
}

func TestUpdate_EqualRatingsSplitSixteen(t *testing.T) {
	e := rating.NewEngine(0) // 0 -> DefaultK
	a, b := site(1, 1000), site(2, 1000)

	dA, dB, err := e.Update(a, b, pint64(1))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if math.Abs(dA-16.0) > 1e-9 || math.Abs(dB+16.0) > 1e-9 {
		t.Fatalf("expected +16/-16, got %v/%v", dA, dB)
	}
	if math.Abs(a.EloRating-1016.0) > 1e-9 || math.Abs(b.EloRating-984.0) > 1e-9 {
		t.Fatalf("ratings: %v / %v", a.EloRating, b.EloRating)
	}
	if a.Wins != 1 || a.Losses != 0 || a.MatchesPlayed != 1 {
		t.Fatalf("winner counters: %+v", a)
	}
	if b.Wins != 0 || b.Losses != 1 || b.MatchesPlayed != 1 {
		t.Fatalf("loser counters: %+v", b)
	}
}

func TestUpdate_DeltasAreZeroSum(t *testing.T) {
	e := rating.NewEngine(rating.DefaultK)
	pairs := [][2]float64{
		{1000, 1000}, {1200, 1000}, {987.5, 1342.25}, {1500, 700}, {1000.001, 1000},
	}
	for _, p := range pairs {
		a, b := site(1, p[0]), site(2, p[1])
		dA, dB, err := e.Update(a, b, pint64(2))
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if sum := math.Abs(dA + dB); sum > 1e-9 {
			t.Fatalf("deltas not zero-sum for %v: %v", p, sum)
		}
	}
}

func TestUpdate_UpsetMovesMoreThanExpectedWin(t *testing.T) {
	e := rating.NewEngine(rating.DefaultK)

	// Underdog win: big swing.
	fav, dog := site(1, 1200), site(2, 1000)
	dFav, dDog, err := e.Update(fav, dog, pint64(2))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if dDog <= 16.0 {
		t.Fatalf("upset should move more than an even win, got %v", dDog)
	}
	if dFav >= -16.0 {
		t.Fatalf("favorite should lose more than an even loss, got %v", dFav)
	}

	// Favorite win: small swing.
	fav, dog = site(1, 1200), site(2, 1000)
	dFav, _, err = e.Update(fav, dog, pint64(1))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if dFav <= 0 || dFav >= 16.0 {
		t.Fatalf("expected small positive gain for favorite, got %v", dFav)
	}
}

func TestUpdate_SkipIsNoOp(t *testing.T) {
	e := rating.NewEngine(rating.DefaultK)
	a, b := site(1, 1111), site(2, 999)
	a.Wins, a.MatchesPlayed = 3, 3

	dA, dB, err := e.Update(a, b, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if dA != 0 || dB != 0 {
		t.Fatalf("skip must return exact zero deltas, got %v/%v", dA, dB)
	}
	if a.EloRating != 1111 || b.EloRating != 999 || a.MatchesPlayed != 3 || b.MatchesPlayed != 0 {
		t.Fatalf("skip mutated entities: %+v %+v", a, b)
	}
}

func TestUpdate_UnknownWinnerRejected(t *testing.T) {
	e := rating.NewEngine(rating.DefaultK)
	a, b := site(1, 1000), site(2, 1000)

	_, _, err := e.Update(a, b, pint64(99))
	if err != domain.ErrInvalidOutcome {
		t.Fatalf("expected ErrInvalidOutcome, got %v", err)
	}
	if a.EloRating != 1000 || b.EloRating != 1000 || a.MatchesPlayed != 0 {
		t.Fatalf("rejected outcome must not mutate: %+v %+v", a, b)
	}
}

func TestUpdate_CountersStayConsistent(t *testing.T) {
	e := rating.NewEngine(rating.DefaultK)
	a, b := site(1, 1000), site(2, 1000)

	winners := []*int64{pint64(1), pint64(2), nil, pint64(2), pint64(2), nil, pint64(1)}
	for _, w := range winners {
		if _, _, err := e.Update(a, b, w); err != nil {
			t.Fatalf("err: %v", err)
		}
		for _, s := range []*domain.Website{a, b} {
			if s.Wins+s.Losses != s.MatchesPlayed {
				t.Fatalf("wins+losses != matches for %+v", s)
			}
		}
	}
	// 5 decisive outcomes in the sequence.
	if a.MatchesPlayed != 5 || b.MatchesPlayed != 5 {
		t.Fatalf("skips must not count as matches: %d/%d", a.MatchesPlayed, b.MatchesPlayed)
	}
}

func pint64(v int64) *int64 { return &v }
