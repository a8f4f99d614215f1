package app_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/project-caesar00/caesar-elo/internal/app"
	"github.com/project-caesar00/caesar-elo/internal/domain"
	"github.com/project-caesar00/caesar-elo/internal/rating"
)

func newReviewService(repo *fakeWebsiteRepo, cache *fakeCache) *app.ReviewService {
	return app.NewReviewService(repo, rating.NewEngine(0), rating.RandomSelector{}, cache)
}

func TestSubmitComparison_DecisiveMovesRatings(t *testing.T) {
	repo := newFakeWebsiteRepo(
		domain.Website{ID: 1, URL: "https://a.example", EloRating: 1000},
		domain.Website{ID: 2, URL: "https://b.example", EloRating: 1000},
	)
	cache := &fakeCache{store: map[string]any{"leaderboard:50": []domain.LeaderboardEntry{}}}
	svc := newReviewService(repo, cache)

	out, err := svc.SubmitComparison(context.Background(), 1, 2, ptr(int64(1)))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	c := out.Comparison
	if math.Abs(c.DeltaA-16) > 1e-9 || math.Abs(c.DeltaB+16) > 1e-9 {
		t.Fatalf("deltas: got %.4f / %.4f, want +16 / -16", c.DeltaA, c.DeltaB)
	}
	if out.WebsiteA.EloRating != 1016 || out.WebsiteB.EloRating != 984 {
		t.Fatalf("outcome ratings: %.1f / %.1f", out.WebsiteA.EloRating, out.WebsiteB.EloRating)
	}

	a, _ := repo.GetWebsite(context.Background(), 1)
	b, _ := repo.GetWebsite(context.Background(), 2)
	if a.EloRating != 1016 || b.EloRating != 984 {
		t.Fatalf("ratings not persisted: %.1f / %.1f", a.EloRating, b.EloRating)
	}
	if a.Wins != 1 || a.MatchesPlayed != 1 || b.Losses != 1 || b.MatchesPlayed != 1 {
		t.Fatalf("counters not persisted: a=%+v b=%+v", a, b)
	}
	if len(repo.comparisons) != 1 {
		t.Fatalf("expected one audit row, got %d", len(repo.comparisons))
	}

	wantDropped := map[string]bool{"leaderboard:50": true, "stats": true}
	for _, k := range cache.dels {
		delete(wantDropped, k)
	}
	if len(wantDropped) != 0 {
		t.Fatalf("cache keys not invalidated: %v", wantDropped)
	}
}

func TestSubmitComparison_SkipLeavesRatingsAlone(t *testing.T) {
	repo := newFakeWebsiteRepo(
		domain.Website{ID: 1, URL: "https://a.example", EloRating: 1234, MatchesPlayed: 7, Wins: 4, Losses: 3},
		domain.Website{ID: 2, URL: "https://b.example", EloRating: 1100, MatchesPlayed: 2, Wins: 1, Losses: 1},
	)
	svc := newReviewService(repo, &fakeCache{})

	out, err := svc.SubmitComparison(context.Background(), 1, 2, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	c := out.Comparison
	if c.DeltaA != 0 || c.DeltaB != 0 {
		t.Fatalf("skip must carry zero deltas, got %.4f / %.4f", c.DeltaA, c.DeltaB)
	}
	if c.WinnerID != nil {
		t.Fatalf("skip must keep winner nil")
	}

	a, _ := repo.GetWebsite(context.Background(), 1)
	if a.EloRating != 1234 || a.MatchesPlayed != 7 {
		t.Fatalf("skip mutated website: %+v", a)
	}
	if len(repo.comparisons) != 1 {
		t.Fatalf("skip still gets an audit row, got %d", len(repo.comparisons))
	}
}

func TestSubmitComparison_ForeignWinnerRejected(t *testing.T) {
	repo := newFakeWebsiteRepo(
		domain.Website{ID: 1, URL: "https://a.example", EloRating: 1000},
		domain.Website{ID: 2, URL: "https://b.example", EloRating: 1000},
	)
	svc := newReviewService(repo, &fakeCache{})

	_, err := svc.SubmitComparison(context.Background(), 1, 2, ptr(int64(99)))
	if !errors.Is(err, domain.ErrInvalidOutcome) {
		t.Fatalf("want ErrInvalidOutcome, got %v", err)
	}
	a, _ := repo.GetWebsite(context.Background(), 1)
	if a.EloRating != 1000 || len(repo.comparisons) != 0 {
		t.Fatalf("rejected outcome must not persist anything")
	}
}

func TestSubmitComparison_SelfDuelRejected(t *testing.T) {
	repo := newFakeWebsiteRepo(domain.Website{ID: 1, URL: "https://a.example", EloRating: 1000})
	svc := newReviewService(repo, &fakeCache{})

	_, err := svc.SubmitComparison(context.Background(), 1, 1, ptr(int64(1)))
	if !errors.Is(err, domain.ErrInvalidOutcome) {
		t.Fatalf("want ErrInvalidOutcome, got %v", err)
	}
}

func TestSubmitComparison_UnknownWebsite(t *testing.T) {
	repo := newFakeWebsiteRepo(domain.Website{ID: 1, URL: "https://a.example", EloRating: 1000})
	svc := newReviewService(repo, &fakeCache{})

	_, err := svc.SubmitComparison(context.Background(), 1, 404, ptr(int64(1)))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestNextPair_NeedsTwoWebsites(t *testing.T) {
	repo := newFakeWebsiteRepo(domain.Website{ID: 1, URL: "https://a.example"})
	svc := newReviewService(repo, &fakeCache{})

	_, _, err := svc.NextPair(context.Background())
	if !errors.Is(err, domain.ErrInsufficientWebsites) {
		t.Fatalf("want ErrInsufficientWebsites, got %v", err)
	}
}

func TestNextPair_ReturnsDistinctKnownWebsites(t *testing.T) {
	repo := newFakeWebsiteRepo(
		domain.Website{ID: 1, URL: "https://a.example"},
		domain.Website{ID: 2, URL: "https://b.example"},
		domain.Website{ID: 3, URL: "https://c.example"},
	)
	svc := newReviewService(repo, &fakeCache{})

	for i := 0; i < 50; i++ {
		a, b, err := svc.NextPair(context.Background())
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if a.ID == b.ID {
			t.Fatalf("pair not distinct: %d", a.ID)
		}
		if a.ID < 1 || a.ID > 3 || b.ID < 1 || b.ID > 3 {
			t.Fatalf("pair outside the catalog: %d / %d", a.ID, b.ID)
		}
	}
}

func TestGrade_SecondPassKeepsEarlierAxes(t *testing.T) {
	repo := newFakeWebsiteRepo(domain.Website{ID: 1, URL: "https://a.example"})
	svc := newReviewService(repo, &fakeCache{})

	if _, err := svc.Grade(context.Background(), 1, domain.GradeInput{
		OverallAesthetic: ptr(8),
		ColorHarmony:     ptr(7),
		DesignTemplate:   true,
	}); err != nil {
		t.Fatalf("first grade: %v", err)
	}
	g, err := svc.Grade(context.Background(), 1, domain.GradeInput{Typography: ptr(6)})
	if err != nil {
		t.Fatalf("second grade: %v", err)
	}
	if g.OverallAesthetic == nil || *g.OverallAesthetic != 8 {
		t.Fatalf("second pass dropped earlier axis: %+v", g)
	}
	if g.Typography == nil || *g.Typography != 6 {
		t.Fatalf("second pass axis missing: %+v", g)
	}

	w, _ := repo.GetWebsite(context.Background(), 1)
	if !w.Graded || w.GradedAt == nil {
		t.Fatalf("grading must flag the website: %+v", w)
	}
}

func TestGrade_UnknownWebsite(t *testing.T) {
	svc := newReviewService(newFakeWebsiteRepo(), &fakeCache{})
	_, err := svc.Grade(context.Background(), 42, domain.GradeInput{OverallAesthetic: ptr(5)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSkip_MarksGradedWithoutScores(t *testing.T) {
	repo := newFakeWebsiteRepo(domain.Website{ID: 1, URL: "https://a.example"})
	svc := newReviewService(repo, &fakeCache{})

	if err := svc.Skip(context.Background(), 1); err != nil {
		t.Fatalf("err: %v", err)
	}
	w, _ := repo.GetWebsite(context.Background(), 1)
	if !w.Graded {
		t.Fatalf("skip must mark graded")
	}
	if g, _ := repo.GetGrade(context.Background(), 1); g != nil {
		t.Fatalf("skip must not create a grade row")
	}
}

func TestAddWebsite_StartsAtInitialRating(t *testing.T) {
	repo := newFakeWebsiteRepo()
	svc := newReviewService(repo, &fakeCache{})

	w, err := svc.AddWebsite(context.Background(), domain.Website{URL: "https://new.example", Name: ptr("New")})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if w.EloRating != domain.InitialRating {
		t.Fatalf("want initial rating %v, got %v", domain.InitialRating, w.EloRating)
	}

	_, err = svc.AddWebsite(context.Background(), domain.Website{URL: "https://new.example"})
	if !errors.Is(err, domain.ErrDuplicateURL) {
		t.Fatalf("want ErrDuplicateURL, got %v", err)
	}
}
