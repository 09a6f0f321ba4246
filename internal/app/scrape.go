// Package app holds the scrape pipeline: envelope decoding, record mapping
// and the pagination driver.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"gmaps_reviews/internal/adapters/observability"
	"gmaps_reviews/internal/domain"
)

var featureIDPattern = regexp.MustCompile(`0[xX][0-9a-fA-F]+:0[xX][0-9a-fA-F]+`)

// FeatureIDFromURL extracts the place feature identifier from a source URL.
func FeatureIDFromURL(sourceURL string) (string, error) {
	id := featureIDPattern.FindString(sourceURL)
	if id == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrNoFeatureID, sourceURL)
	}
	return id, nil
}

// Options configure one scrape invocation.
type Options struct {
	// Target is the number of records to stop at; 0 scrapes everything the
	// endpoint will serve.
	Target int
	// Language is the hl code for the listing request.
	Language string
	// Format selects the checkpoint/output serialization.
	Format domain.Format
	// OutputPath, when non-empty, receives the final record set.
	OutputPath string
	// WorkDir holds the recovery checkpoint file.
	WorkDir string
	// Retries bounds re-attempts per page beyond the first try.
	Retries int
	// RetryWait is the constant wait between attempts.
	RetryWait time.Duration
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = "en"
	}
	if o.Format == "" {
		o.Format = domain.FormatJSON
	}
	if o.WorkDir == "" {
		o.WorkDir = "tmp"
	}
	if o.Retries <= 0 {
		o.Retries = 10
	}
	if o.RetryWait <= 0 {
		o.RetryWait = 30 * time.Second
	}
	return o
}

// ScrapeService drives pagination over the listing endpoint: fetch, decode,
// accumulate, checkpoint, advance, with a bounded constant-wait retry budget
// per page.
type ScrapeService struct {
	client domain.ListingClient
	sink   domain.Sink
	opts   Options
}

func NewScrapeService(client domain.ListingClient, sink domain.Sink, opts Options) *ScrapeService {
	return &ScrapeService{client: client, sink: sink, opts: opts.withDefaults()}
}

// Scrape runs one invocation against sourceURL and returns the accumulated
// records. On retry exhaustion the partial set is flushed to OutputPath (when
// configured) and the checkpoint file stays on disk as a recovery artifact;
// both the returned records and the error describe the partial outcome.
func (s *ScrapeService) Scrape(ctx context.Context, sourceURL string) ([]domain.ReviewRecord, error) {
	featureID, err := FeatureIDFromURL(sourceURL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.opts.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	checkpoint := filepath.Join(s.opts.WorkDir,
		fmt.Sprintf("gmaps_reviews_temp_%s.%s", featureID, s.opts.Format))

	log.Info().
		Str("feature", featureID).
		Int("target", s.opts.Target).
		Str("format", string(s.opts.Format)).
		Msg("scrape starting")

	var all []domain.ReviewRecord
	cursor := ""
	for page := 0; ; page++ {
		env, err := s.fetchPage(ctx, featureID, cursor, page)
		if err != nil {
			return s.abort(all, checkpoint, err)
		}

		// An envelope with no record slot is the natural end of results.
		if len(env) < 3 {
			log.Info().Int("records", len(all)).Msg("scrape complete (no further results)")
			break
		}

		cursor = ExtractCursor(env)
		records := ExtractRecords(env)
		all = append(all, records...)
		observability.ObservePage(len(records))

		if err := s.sink.Checkpoint(all, checkpoint, s.opts.Format); err != nil {
			return all, fmt.Errorf("checkpoint: %w", err)
		}
		log.Debug().Int("page", page).Int("records", len(all)).Msg("page checkpointed")

		if s.opts.Target > 0 && len(all) >= s.opts.Target {
			all = all[:s.opts.Target]
			log.Info().Int("records", len(all)).Msg("scrape complete (target reached)")
			break
		}
		if cursor == "" {
			log.Info().Int("records", len(all)).Msg("scrape complete")
			break
		}
	}

	if s.opts.OutputPath != "" {
		if err := s.sink.Finalize(all, s.opts.OutputPath, s.opts.Format); err != nil {
			return all, fmt.Errorf("finalize: %w", err)
		}
		log.Info().Str("path", s.opts.OutputPath).Int("records", len(all)).Msg("output written")
	}
	if err := s.sink.Discard(checkpoint); err != nil {
		log.Warn().Err(err).Str("path", checkpoint).Msg("checkpoint cleanup failed")
	}
	return all, nil
}

// fetchPage runs one page attempt under the retry budget. Transport errors,
// non-success statuses and envelope parse failures all count as retryable.
func (s *ScrapeService) fetchPage(ctx context.Context, featureID, cursor string, page int) ([]any, error) {
	var env []any
	attempt := func() error {
		raw, err := s.client.FetchPage(ctx, featureID, cursor, s.opts.Language)
		if err != nil {
			return err
		}
		env, err = ParseEnvelope(raw)
		if err != nil {
			log.Error().Err(err).Int("page", page).Msg("malformed envelope")
			return err
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		observability.ObserveRetry()
		log.Warn().Err(err).Int("page", page).Dur("wait", wait).Msg("page attempt failed, retrying")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RetryWait), uint64(s.opts.Retries)),
		ctx,
	)
	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w after %d retries: %v", domain.ErrRetriesExhausted, s.opts.Retries, err)
	}
	return env, nil
}

// abort flushes the partial accumulator before surfacing a terminal failure.
// The checkpoint file is deliberately left in place.
func (s *ScrapeService) abort(all []domain.ReviewRecord, checkpoint string, cause error) ([]domain.ReviewRecord, error) {
	if len(all) > 0 && s.opts.OutputPath != "" {
		if err := s.sink.Finalize(all, s.opts.OutputPath, s.opts.Format); err != nil {
			log.Error().Err(err).Msg("partial output flush failed")
		} else {
			log.Info().Int("records", len(all)).Str("path", s.opts.OutputPath).Msg("partial output written")
		}
	}
	log.Error().Err(cause).Str("recovery", checkpoint).Int("records", len(all)).Msg("scrape aborted")
	return all, cause
}
