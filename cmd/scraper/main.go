package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"gmaps_reviews/internal/adapters/gmaps"
	"gmaps_reviews/internal/adapters/observability"
	"gmaps_reviews/internal/app"
	"gmaps_reviews/internal/domain"
	"gmaps_reviews/internal/shared"
	filesink "gmaps_reviews/internal/storage/file"
	mysqlstore "gmaps_reviews/internal/storage/mysql"
)

func main() {
	_ = godotenv.Load()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	urls := os.Args[1:]
	if len(urls) == 0 {
		log.Fatal().Msg("usage: scraper <place-url> [<place-url> ...]")
	}

	log.Info().
		Int("places", len(urls)).
		Int("target", cfg.TargetReviews).
		Str("format", cfg.OutputFormat).
		Int("workers", cfg.Workers).
		Msg("scraper starting")

	observability.Serve()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rotator := gmaps.NewRotator(gmaps.DefaultProfiles, cfg.RandomProfiles, time.Now().UnixNano())
	client, err := gmaps.New("", rotator, cfg.ProxyURL, cfg.RequestInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize listing client")
	}
	sink := filesink.NewSink()

	var store *mysqlstore.Store
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		log.Info().Msg("db ping ok")
		store = mysqlstore.New(db)
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, u := range urls {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("shutting down before all places were scheduled")
			break
		}

		wg.Add(1)
		go func(sourceURL string) {
			defer wg.Done()
			defer sem.Release(1)

			svc := app.NewScrapeService(client, sink, app.Options{
				Target:     cfg.TargetReviews,
				Language:   cfg.Language,
				Format:     domain.Format(cfg.OutputFormat),
				OutputPath: outputPath(cfg, sourceURL, len(urls) > 1),
				WorkDir:    cfg.WorkDir,
				Retries:    cfg.Retries,
				RetryWait:  cfg.RetryWait,
			})

			records, err := svc.Scrape(ctx, sourceURL)
			if err != nil {
				log.Warn().Str("url", sourceURL).Err(err).Msg("scrape failed")
				if store != nil {
					if fid, ferr := app.FeatureIDFromURL(sourceURL); ferr == nil {
						if serr := store.LogFailure(ctx, fid, err.Error()); serr != nil {
							log.Error().Err(serr).Msg("failure bookkeeping failed")
						}
					}
				}
				return
			}
			log.Info().Str("url", sourceURL).Int("records", len(records)).Msg("scrape ok")

			if store != nil {
				fid, _ := app.FeatureIDFromURL(sourceURL)
				if err := store.UpsertReviews(ctx, fid, records); err != nil {
					log.Error().Err(err).Str("feature", fid).Msg("db upsert failed")
				}
			}
		}(u)
	}

	wg.Wait()
	log.Info().Msg("all places processed")
}

// outputPath derives a per-place output file when several places share one
// run; a single place keeps the configured path as-is.
func outputPath(cfg shared.Config, sourceURL string, multi bool) string {
	if cfg.OutputPath == "" {
		return ""
	}
	if !multi {
		return cfg.OutputPath
	}
	fid, err := app.FeatureIDFromURL(sourceURL)
	if err != nil {
		fid = "unknown"
	}
	name := strings.ReplaceAll(fid, ":", "_") + "." + cfg.OutputFormat
	return filepath.Join(cfg.OutputPath, name)
}
