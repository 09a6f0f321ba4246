package domain

import "context"

// ListingClient issues one page request against the provider's listing
// endpoint and returns the raw response text. Transport failures and
// non-success statuses come back as errors; the driver decides about retries.
type ListingClient interface {
	FetchPage(ctx context.Context, featureID, cursor, lang string) (string, error)
}

// Sink persists an accumulated record set. Checkpoint rewrites the recovery
// artifact with the full accumulator; Finalize writes the user-facing output
// (creating parent directories); Discard removes the recovery artifact after
// a successful finalize.
type Sink interface {
	Checkpoint(records []ReviewRecord, path string, format Format) error
	Finalize(records []ReviewRecord, path string, format Format) error
	Discard(path string) error
}

// ReviewStore is an optional durable store for scraped records.
type ReviewStore interface {
	UpsertReviews(ctx context.Context, featureID string, rs []ReviewRecord) error
	LogFailure(ctx context.Context, featureID, reason string) error
	ListReviews(ctx context.Context, featureID string, limit int) ([]ReviewRecord, error)
}
