package domain

import "errors"

var (
	// ErrNoFeatureID means the source URL carries no 0x<hex>:0x<hex> feature
	// identifier. Fatal configuration error, never retried.
	ErrNoFeatureID = errors.New("no feature ID in source URL")

	// ErrRetriesExhausted terminates an invocation after the retry budget for
	// a single page is spent. The checkpoint file stays on disk.
	ErrRetriesExhausted = errors.New("retries exhausted")
)
