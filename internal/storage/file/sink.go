// Package file persists review record sets to local files in the configured
// serialization format.
package file

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"

	"gmaps_reviews/internal/adapters/observability"
	"gmaps_reviews/internal/domain"
)

// csvHeader fixes the tabular column set. The translation and likes fields
// are reserved and not emitted in tabular output.
var csvHeader = []string{
	"review_id",
	"user_name",
	"user_url",
	"user_reviews",
	"rating",
	"relative_date",
	"text_date",
	"text",
	"response_text",
	"response_relative_date",
	"response_text_date",
	"retrieval_date",
}

// Sink writes record sets atomically enough for checkpoint use: every write
// replaces the whole file, so a reread always sees a complete set.
type Sink struct{}

func NewSink() *Sink {
	return &Sink{}
}

// Checkpoint rewrites path with the full record set accumulated so far.
func (s *Sink) Checkpoint(records []domain.ReviewRecord, path string, format domain.Format) error {
	if err := s.write(records, path, format); err != nil {
		return err
	}
	observability.ObserveCheckpoint()
	return nil
}

// Finalize writes the completed record set to path, creating parent
// directories as needed.
func (s *Sink) Finalize(records []domain.ReviewRecord, path string, format domain.Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	return s.write(records, path, format)
}

// Discard removes a checkpoint file. A missing file is not an error.
func (s *Sink) Discard(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}

func (s *Sink) write(records []domain.ReviewRecord, path string, format domain.Format) error {
	switch format {
	case domain.FormatJSON:
		return writeJSON(records, path)
	case domain.FormatCSV:
		return writeCSV(records, path)
	case domain.FormatParquet:
		return writeParquet(records, path)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeJSON(records []domain.ReviewRecord, path string) error {
	if records == nil {
		records = []domain.ReviewRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeCSV(records []domain.ReviewRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ReviewID,
			r.UserName,
			r.UserURL,
			strconv.Itoa(r.UserReviews),
			strconv.FormatFloat(r.Rating, 'f', -1, 64),
			r.RelativeDate,
			timeColumn(r.TextDate),
			r.Text,
			r.ResponseText,
			r.ResponseRelativeDate,
			timeColumn(r.ResponseTextDate),
			r.RetrievalDate.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	return f.Close()
}

func writeParquet(records []domain.ReviewRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[domain.ReviewRecord](f)
	if len(records) > 0 {
		if _, err := w.Write(records); err != nil {
			return fmt.Errorf("write row group: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return f.Close()
}

func timeColumn(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
