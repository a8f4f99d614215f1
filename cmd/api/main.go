package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/project-caesar00/caesar-elo/internal/adapters/http_server"
	"github.com/project-caesar00/caesar-elo/internal/adapters/observability"
	"github.com/project-caesar00/caesar-elo/internal/adapters/places"
	redisad "github.com/project-caesar00/caesar-elo/internal/adapters/redis"
	"github.com/project-caesar00/caesar-elo/internal/app"
	"github.com/project-caesar00/caesar-elo/internal/auth"
	"github.com/project-caesar00/caesar-elo/internal/rating"
	"github.com/project-caesar00/caesar-elo/internal/shared"
	mysqlrepo "github.com/project-caesar00/caesar-elo/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	maps := places.New(cfg.PlacesBase, cfg.GeocodeBase, cfg.MapsKey, cfg.MapsRPS, cfg.MapsTimeout)

	sessions := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	google := auth.NewGoogleVerifier("", cfg.GoogleClientID)

	review := app.NewReviewService(repo, rating.NewEngine(rating.DefaultK), rating.RandomSelector{}, cache)
	search := app.NewAggregationService(maps, repo, cfg.MapsLanguage, cfg.MaxResults)
	scrape := app.NewScrapeService(maps, repo, repo)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.HTTPTimeout, cfg.CORSOrigins)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.Mount("/screenshots/*", http.StripPrefix("/screenshots/", http.FileServer(http.Dir(cfg.ScreenshotsDir))))
	srv.MountHandlers(&server.Handlers{
		Q:      q,
		Review: review,
		Search: search,
		Scrape: scrape,
		Auth:   sessions,
		Google: google,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
