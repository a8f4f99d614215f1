package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// DefaultMaxResults caps one aggregation run at three upstream pages.
const DefaultMaxResults = 60

// AggregationService runs the paginated Places text search, ranks the merged
// pages by popularity and persists the run.
type AggregationService struct {
	places     domain.PlacesClient
	repo       domain.SearchRepository
	language   string
	maxResults int
}

func NewAggregationService(places domain.PlacesClient, repo domain.SearchRepository, language string, maxResults int) *AggregationService {
	if language == "" {
		language = "de"
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &AggregationService{places: places, repo: repo, language: language, maxResults: maxResults}
}

// Aggregate pulls pages sequentially until the cap, a missing continuation
// token, or an empty page stops it. Each page's token comes from the previous
// response, so there is nothing to parallelize. Any page error aborts the run
// with nothing persisted.
func (s *AggregationService) Aggregate(ctx context.Context, query string, minRating *float64) (domain.SearchResult, error) {
	var all []domain.PlaceRecord
	token := ""
	for len(all) < s.maxResults {
		if err := ctx.Err(); err != nil {
			return domain.SearchResult{}, err
		}
		page, err := s.places.SearchTextPage(ctx, domain.TextSearchRequest{
			Query:        query,
			MinRating:    minRating,
			LanguageCode: s.language,
			PageToken:    token,
		})
		if err != nil {
			return domain.SearchResult{}, err
		}
		all = append(all, page.Places...)
		log.Debug().
			Str("query", query).
			Int("page_size", len(page.Places)).
			Int("fetched", len(all)).
			Msg("places page merged")

		token = page.NextPageToken
		if token == "" || len(page.Places) == 0 {
			break
		}
	}

	ranked := Rank(all, s.maxResults)
	saved, err := s.repo.SaveSearch(ctx, domain.SearchQuery{
		Query:       query,
		MinRating:   minRating,
		ResultCount: len(ranked),
	}, ranked)
	if err != nil {
		return domain.SearchResult{}, err
	}

	log.Info().Str("query", query).Int("results", len(ranked)).Int64("search_query", saved.ID).Msg("search aggregated")
	return domain.SearchResult{
		Query:         query,
		Results:       ranked,
		TotalCount:    len(ranked),
		SearchQueryID: saved.ID,
	}, nil
}

// Rank orders places by review count descending and assigns 1-based ranks,
// truncated to max. The sort is stable so equally reviewed places keep their
// fetch order.
func Rank(places []domain.PlaceRecord, max int) []domain.RankedPlace {
	sorted := make([]domain.PlaceRecord, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RatingCount > sorted[j].RatingCount
	})
	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	out := make([]domain.RankedPlace, len(sorted))
	for i, p := range sorted {
		out[i] = domain.RankedPlace{PlaceRecord: p, Rank: i + 1}
	}
	return out
}
