package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/project-caesar00/caesar-elo/internal/adapters/observability"
	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// DefaultScrapeRadiusKM is used when a job does not set its own radius.
const DefaultScrapeRadiusKM = 10

// ScrapeService discovers business websites around a location with the Places
// nearby search and files the ones that list a website into the catalog.
type ScrapeService struct {
	places domain.PlacesClient
	jobs   domain.ScrapeJobRepository
	sites  domain.WebsiteRepository
}

func NewScrapeService(places domain.PlacesClient, jobs domain.ScrapeJobRepository, sites domain.WebsiteRepository) *ScrapeService {
	return &ScrapeService{places: places, jobs: jobs, sites: sites}
}

// StartJob files a pending job row. Run executes it, usually from a separate
// goroutine.
func (s *ScrapeService) StartJob(ctx context.Context, cfg domain.ScrapeConfig) (domain.ScrapeJob, error) {
	if cfg.RadiusKM <= 0 {
		cfg.RadiusKM = DefaultScrapeRadiusKM
	}
	job := domain.ScrapeJob{
		ID:            uuid.NewString(),
		Location:      cfg.Location,
		RadiusKM:      cfg.RadiusKM,
		BusinessTypes: cfg.BusinessTypes,
		Status:        domain.JobPending,
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return domain.ScrapeJob{}, err
	}
	return job, nil
}

// Run drives one job to a terminal status. Failures (geocode miss, quota,
// upstream errors) mark the job failed with the message; callers poll the job
// row, so nothing bubbles out of here.
func (s *ScrapeService) Run(ctx context.Context, jobID string) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		log.Error().Str("job", jobID).Err(err).Msg("scrape job could not be loaded")
		return
	}
	if err := s.jobs.MarkJobRunning(ctx, job.ID); err != nil {
		log.Error().Str("job", jobID).Err(err).Msg("scrape job could not be marked running")
		return
	}

	found, err := s.scrape(ctx, job)
	if err != nil {
		_ = s.jobs.MarkJobFailed(ctx, job.ID, err.Error())
		observability.ObserveScrapeJob("failed")
		log.Warn().Str("job", job.ID).Str("location", job.Location).Err(err).Msg("scrape job failed")
		return
	}
	_ = s.jobs.MarkJobCompleted(ctx, job.ID, found)
	observability.ObserveScrapeJob("completed")
	log.Info().Str("job", job.ID).Str("location", job.Location).Int("websites", found).Msg("scrape job completed")
}

// Job returns one job row for status polling.
func (s *ScrapeService) Job(ctx context.Context, jobID string) (domain.ScrapeJob, error) {
	return s.jobs.GetJob(ctx, jobID)
}

// Jobs lists recent jobs, newest first.
func (s *ScrapeService) Jobs(ctx context.Context, limit int) ([]domain.ScrapeJob, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.jobs.ListJobs(ctx, limit)
}

func (s *ScrapeService) scrape(ctx context.Context, job domain.ScrapeJob) (int, error) {
	coords, err := s.places.Geocode(ctx, job.Location)
	if err != nil {
		return 0, fmt.Errorf("geocode %q: %w", job.Location, err)
	}
	hits, err := s.places.SearchNearby(ctx, domain.NearbySearchRequest{
		Center:        coords,
		RadiusMeters:  job.RadiusKM * 1000,
		IncludedTypes: job.BusinessTypes,
	})
	if err != nil {
		return 0, fmt.Errorf("nearby search: %w", err)
	}

	source := fmt.Sprintf("gmaps:%s:%s", job.Location, strings.Join(job.BusinessTypes, ","))
	added := 0
	for _, hit := range hits {
		w, ok := websiteFromPlace(hit, source)
		if !ok {
			continue // no website listed, useless to us
		}
		if _, err := s.sites.CreateWebsite(ctx, w); err != nil {
			if errors.Is(err, domain.ErrDuplicateURL) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// websiteFromPlace keeps only places that list a website, normalizing bare
// hosts to https.
func websiteFromPlace(p domain.NearbyPlace, source string) (domain.Website, bool) {
	if p.WebsiteURL == nil || *p.WebsiteURL == "" {
		return domain.Website{}, false
	}
	u := *p.WebsiteURL
	if parsed, err := url.Parse(u); err != nil || parsed.Scheme == "" {
		u = "https://" + u
	}
	var placeID *string
	if p.PlaceID != "" {
		placeID = &p.PlaceID
	}
	return domain.Website{
		URL:          u,
		Name:         p.Name,
		Address:      p.Address,
		Phone:        p.Phone,
		BusinessType: p.PrimaryType,
		PlaceID:      placeID,
		Source:       &source,
		EloRating:    domain.InitialRating,
	}, true
}
