package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/project-caesar00/caesar-elo/internal/adapters/observability"
	"github.com/project-caesar00/caesar-elo/internal/adapters/places"
	"github.com/project-caesar00/caesar-elo/internal/app"
	"github.com/project-caesar00/caesar-elo/internal/domain"
	"github.com/project-caesar00/caesar-elo/internal/shared"
	mysqlrepo "github.com/project-caesar00/caesar-elo/internal/storage/mysql"
)

// Batch discovery: one scrape job per configured location, a few in flight at
// a time. Every run is recorded as a job row, same as jobs started over HTTP.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(cfg.ScrapeLocations) == 0 {
		log.Fatal().Msg("SCRAPE_LOCATIONS is empty; nothing to do")
	}
	log.Info().
		Int("locations", len(cfg.ScrapeLocations)).
		Int("workers", cfg.ScrapeWorkers).
		Float64("radius_km", cfg.ScrapeRadiusKM).
		Msg("scraper starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	maps := places.New(cfg.PlacesBase, cfg.GeocodeBase, cfg.MapsKey, cfg.MapsRPS, cfg.MapsTimeout)
	svc := app.NewScrapeService(maps, repo, repo)

	sem := semaphore.NewWeighted(int64(cfg.ScrapeWorkers))
	var wg sync.WaitGroup

	for _, loc := range cfg.ScrapeLocations {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(location string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			job, err := svc.StartJob(ctx, domain.ScrapeConfig{
				Location:      location,
				RadiusKM:      cfg.ScrapeRadiusKM,
				BusinessTypes: cfg.ScrapeTypes,
			})
			if err != nil {
				log.Warn().Str("location", location).Err(err).Msg("job create failed")
				return
			}
			svc.Run(ctx, job.ID)

			done, err := svc.Job(ctx, job.ID)
			if err != nil {
				log.Warn().Str("job", job.ID).Err(err).Msg("job status read failed")
				return
			}
			log.Info().
				Str("location", location).
				Str("status", string(done.Status)).
				Int("websites", done.WebsitesFound).
				Msg("job finished")
		}(loc)
	}

	wg.Wait()
	log.Info().Msg("scrape run completed")
}
