package domain

import "time"

// PlaceRecord is one place as returned by the Places text search. Only the
// upstream id is required; everything else defaults (rating count to 0) so a
// sparse upstream record still ranks.
type PlaceRecord struct {
	PlaceID     string
	Name        string
	RatingCount int
	RatingScore *float64
	WebsiteURL  *string
}

// RankedPlace is a PlaceRecord after sorting, with its dense 1-based rank.
type RankedPlace struct {
	PlaceRecord
	Rank int
}

// TextSearchRequest drives one page of the paginated text search.
type TextSearchRequest struct {
	Query        string
	MinRating    *float64 // 1.0..5.0 when set
	LanguageCode string
	PageToken    string // empty on the first page
}

// TextSearchPage is one page of results plus the continuation token; an empty
// token means the upstream has no further pages.
type TextSearchPage struct {
	Places        []PlaceRecord
	NextPageToken string
}

// NearbyPlace is one hit of the nearby search used by the scraper. Richer
// fields than PlaceRecord; WebsiteURL nil means the place is useless to us.
type NearbyPlace struct {
	PlaceID     string
	Name        *string
	Address     *string
	Phone       *string
	PrimaryType *string
	WebsiteURL  *string
}

type NearbySearchRequest struct {
	Center        Coords
	RadiusMeters  float64 // capped at 50km by the API
	IncludedTypes []string
	MaxResults    int // the API allows at most 20
}

type Coords struct{ Lat, Lng float64 }

// SearchQuery is the persisted record of one aggregation run.
type SearchQuery struct {
	ID          int64
	Query       string
	MinRating   *float64
	ResultCount int
	CreatedAt   time.Time
}

// SearchResult is what an aggregation run returns to the caller.
type SearchResult struct {
	Query         string
	Results       []RankedPlace
	TotalCount    int
	SearchQueryID int64
}
