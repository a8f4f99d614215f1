package app

import (
	"context"
	"fmt"
	"time"

	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// QueryService serves the read side. The rank-bearing reads go through the
// cache; everything else hits the repository directly.
type QueryService struct {
	repo     domain.WebsiteRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(repo domain.WebsiteRepository, cache domain.Cache, cacheTTL time.Duration) *QueryService {
	return &QueryService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// Leaderboard returns the top websites by rating with 1-based ranks.
func (s *QueryService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	key := fmt.Sprintf("leaderboard:%d", limit)
	var entries []domain.LeaderboardEntry
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &entries); ok {
			return entries, nil
		}
	}

	ws, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries = make([]domain.LeaderboardEntry, len(ws))
	for i, w := range ws {
		entries[i] = domain.LeaderboardEntry{Website: w, Rank: i + 1}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, entries, int(s.cacheTTL.Seconds()))
	}
	return entries, nil
}

// Stats returns catalog totals, cached under a fixed key that the write paths
// drop.
func (s *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, "stats", &st); ok {
			return st, nil
		}
	}

	st, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, "stats", st, int(s.cacheTTL.Seconds()))
	}
	return st, nil
}

// ListWebsites returns a filtered catalog page.
func (s *QueryService) ListWebsites(ctx context.Context, q domain.WebsitesQuery) ([]domain.Website, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	return s.repo.ListWebsites(ctx, q)
}

// GetWebsite returns one website with its grade, if graded.
func (s *QueryService) GetWebsite(ctx context.Context, id int64) (domain.WebsiteWithGrade, error) {
	w, err := s.repo.GetWebsite(ctx, id)
	if err != nil {
		return domain.WebsiteWithGrade{}, err
	}
	g, err := s.repo.GetGrade(ctx, id)
	if err != nil {
		return domain.WebsiteWithGrade{}, err
	}
	return domain.WebsiteWithGrade{Website: w, Grade: g}, nil
}

// NextUngraded pops the top of the grading stack.
func (s *QueryService) NextUngraded(ctx context.Context) (domain.Website, error) {
	return s.repo.NextUngraded(ctx)
}

// StackStats reports grading progress.
func (s *QueryService) StackStats(ctx context.Context) (domain.StackStats, error) {
	return s.repo.StackStats(ctx)
}
