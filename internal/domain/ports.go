package domain

import "context"

type WebsiteRepository interface {
	// Write paths
	CreateWebsite(ctx context.Context, w Website) (Website, error) // ErrDuplicateURL on a known URL
	UpsertGrade(ctx context.Context, websiteID int64, in GradeInput) (WebsiteGrade, error)
	MarkGraded(ctx context.Context, websiteID int64) error
	RecordComparison(ctx context.Context, a, b Website, c Comparison) (Comparison, error) // one tx: both rating rows + audit row

	// Read paths
	GetWebsite(ctx context.Context, id int64) (Website, error)
	GetGrade(ctx context.Context, websiteID int64) (*WebsiteGrade, error) // nil when ungraded
	ListWebsites(ctx context.Context, q WebsitesQuery) ([]Website, error)
	AllWebsites(ctx context.Context) ([]Website, error)
	NextUngraded(ctx context.Context) (Website, error) // oldest first; ErrNotFound when drained
	StackStats(ctx context.Context) (StackStats, error)
	Leaderboard(ctx context.Context, limit int) ([]Website, error) // ELO desc
	Stats(ctx context.Context) (Stats, error)
}

type ScrapeJobRepository interface {
	CreateJob(ctx context.Context, j ScrapeJob) error
	GetJob(ctx context.Context, id string) (ScrapeJob, error)
	ListJobs(ctx context.Context, limit int) ([]ScrapeJob, error) // newest first
	MarkJobRunning(ctx context.Context, id string) error
	MarkJobCompleted(ctx context.Context, id string, websitesFound int) error
	MarkJobFailed(ctx context.Context, id string, msg string) error
}

type SearchRepository interface {
	// SaveSearch stores the query row and its ranked places in one tx.
	SaveSearch(ctx context.Context, q SearchQuery, places []RankedPlace) (SearchQuery, error)
}

// PlacesClient is the Google Maps surface. Every method returns
// ErrNotConfigured without touching the network when no key is set, and maps
// HTTP 429 to ErrQuotaExceeded; other failures come back as *ServiceError.
type PlacesClient interface {
	SearchTextPage(ctx context.Context, req TextSearchRequest) (TextSearchPage, error)
	SearchNearby(ctx context.Context, req NearbySearchRequest) ([]NearbyPlace, error)
	Geocode(ctx context.Context, location string) (Coords, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
