package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/project-caesar00/caesar-elo/internal/adapters/observability"
	"github.com/project-caesar00/caesar-elo/internal/domain"
	"github.com/project-caesar00/caesar-elo/internal/rating"
)

// ReviewService drives the two judging loops: pairwise duels and the grading
// stack. Writes that move ratings or counts also drop the cached reads.
type ReviewService struct {
	repo     domain.WebsiteRepository
	engine   *rating.Engine
	selector rating.Selector
	cache    domain.Cache
}

func NewReviewService(repo domain.WebsiteRepository, engine *rating.Engine, selector rating.Selector, cache domain.Cache) *ReviewService {
	return &ReviewService{repo: repo, engine: engine, selector: selector, cache: cache}
}

// AddWebsite files a new website at the initial rating.
func (s *ReviewService) AddWebsite(ctx context.Context, w domain.Website) (domain.Website, error) {
	if w.EloRating == 0 {
		w.EloRating = domain.InitialRating
	}
	out, err := s.repo.CreateWebsite(ctx, w)
	if err != nil {
		return domain.Website{}, err
	}
	s.invalidate(ctx)
	return out, nil
}

// NextPair picks two distinct websites for a duel.
func (s *ReviewService) NextPair(ctx context.Context) (domain.Website, domain.Website, error) {
	ws, err := s.repo.AllWebsites(ctx)
	if err != nil {
		return domain.Website{}, domain.Website{}, err
	}
	return s.selector.Select(ws)
}

// ComparisonOutcome is one settled duel: the audit record plus both websites
// at their new ratings.
type ComparisonOutcome struct {
	Comparison domain.Comparison
	WebsiteA   domain.Website
	WebsiteB   domain.Website
}

// SubmitComparison applies the rating update for one duel and persists both
// rating rows plus the audit record in a single transaction. A nil winnerID
// records a skip: the audit row is written with zero deltas and no rating or
// counter moves.
func (s *ReviewService) SubmitComparison(ctx context.Context, aID, bID int64, winnerID *int64) (ComparisonOutcome, error) {
	if aID == bID {
		return ComparisonOutcome{}, fmt.Errorf("website compared against itself: %w", domain.ErrInvalidOutcome)
	}
	a, err := s.repo.GetWebsite(ctx, aID)
	if err != nil {
		return ComparisonOutcome{}, err
	}
	b, err := s.repo.GetWebsite(ctx, bID)
	if err != nil {
		return ComparisonOutcome{}, err
	}

	deltaA, deltaB, err := s.engine.Update(&a, &b, winnerID)
	if err != nil {
		return ComparisonOutcome{}, err
	}

	c, err := s.repo.RecordComparison(ctx, a, b, domain.Comparison{
		WebsiteAID: a.ID,
		WebsiteBID: b.ID,
		WinnerID:   winnerID,
		DeltaA:     deltaA,
		DeltaB:     deltaB,
	})
	if err != nil {
		return ComparisonOutcome{}, err
	}

	outcome := "skip"
	if winnerID != nil {
		outcome = "decisive"
	}
	observability.ObserveComparison(outcome)
	s.invalidate(ctx)

	log.Debug().
		Int64("website_a", a.ID).
		Int64("website_b", b.ID).
		Str("outcome", outcome).
		Float64("delta_a", deltaA).
		Msg("comparison recorded")
	return ComparisonOutcome{Comparison: c, WebsiteA: a, WebsiteB: b}, nil
}

// Grade upserts the design grades for one website and marks it graded.
func (s *ReviewService) Grade(ctx context.Context, websiteID int64, in domain.GradeInput) (domain.WebsiteGrade, error) {
	g, err := s.repo.UpsertGrade(ctx, websiteID, in)
	if err != nil {
		return domain.WebsiteGrade{}, err
	}
	s.invalidate(ctx)
	log.Debug().Int64("website", websiteID).Msg("grade saved")
	return g, nil
}

// Skip marks a website graded without scores so it leaves the stack.
func (s *ReviewService) Skip(ctx context.Context, websiteID int64) error {
	if err := s.repo.MarkGraded(ctx, websiteID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops the cached leaderboard variants and the stats snapshot.
// Best effort; the next read rebuilds them.
func (s *ReviewService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, limit := range []int{50, 10, 100} {
		_ = s.cache.Del(ctx, fmt.Sprintf("leaderboard:%d", limit))
	}
	_ = s.cache.Del(ctx, "stats")
}
