package file

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gmaps_reviews/internal/domain"
)

func sampleRecords(t *testing.T, n int) []domain.ReviewRecord {
	t.Helper()
	retrieved := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	posted := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	records := make([]domain.ReviewRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := domain.ReviewRecord{
			ReviewID:      "rev-" + strings.Repeat("a", i+1),
			UserName:      "User Name",
			UserURL:       "https://maps/user",
			UserReviews:   i * 3,
			Rating:        4.5,
			RelativeDate:  "2 weeks ago",
			Text:          "Great place, would visit again.\nSecond line.",
			RetrievalDate: retrieved,
		}
		if i%2 == 0 {
			rec.TextDate = &posted
			rec.ResponseText = "Thank you!"
			rec.ResponseRelativeDate = "a week ago"
			rec.ResponseTextDate = &posted
		}
		records = append(records, rec)
	}
	return records
}

func TestJSONRoundTrip(t *testing.T) {
	sink := NewSink()
	path := filepath.Join(t.TempDir(), "out.json")
	records := sampleRecords(t, 5)

	if err := sink.Finalize(records, path, domain.FormatJSON); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got []domain.ReviewRecord
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(records, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", records, got)
	}
}

func TestJSONEmptySetIsArray(t *testing.T) {
	sink := NewSink()
	path := filepath.Join(t.TempDir(), "out.json")
	if err := sink.Checkpoint(nil, path, domain.FormatJSON); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("empty set serialized as %q", data)
	}
}

func TestCheckpointIsIdempotent(t *testing.T) {
	sink := NewSink()
	records := sampleRecords(t, 3)

	for _, format := range []domain.Format{domain.FormatJSON, domain.FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "checkpoint."+string(format))
			if err := sink.Checkpoint(records, path, format); err != nil {
				t.Fatalf("first write: %v", err)
			}
			first, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if err := sink.Checkpoint(records, path, format); err != nil {
				t.Fatalf("second write: %v", err)
			}
			second, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Fatal("repeated checkpoint produced different bytes")
			}
		})
	}
}

func TestCSVLayout(t *testing.T) {
	sink := NewSink()
	path := filepath.Join(t.TempDir(), "out.csv")
	records := sampleRecords(t, 2)

	if err := sink.Finalize(records, path, domain.FormatCSV); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], csvHeader) {
		t.Fatalf("header = %v", rows[0])
	}
	// First record carries both timestamps, second carries neither.
	if rows[1][6] == "" || rows[1][10] == "" {
		t.Fatalf("expected populated date columns, got %v", rows[1])
	}
	if rows[2][6] != "" || rows[2][10] != "" {
		t.Fatalf("expected empty date columns, got %v", rows[2])
	}
	if rows[1][4] != "4.5" {
		t.Fatalf("rating column = %q", rows[1][4])
	}
	if !strings.Contains(rows[1][7], "Second line.") {
		t.Fatalf("multiline text mangled: %q", rows[1][7])
	}
}

func TestFinalizeCreatesParentDirs(t *testing.T) {
	sink := NewSink()
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.json")
	if err := sink.Finalize(sampleRecords(t, 1), path, domain.FormatJSON); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestDiscard(t *testing.T) {
	sink := NewSink()
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := sink.Checkpoint(sampleRecords(t, 1), path, domain.FormatJSON); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	if err := sink.Discard(path); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present: %v", err)
	}
	// Removing again is a no-op.
	if err := sink.Discard(path); err != nil {
		t.Fatalf("repeat discard: %v", err)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	sink := NewSink()
	err := sink.Checkpoint(nil, filepath.Join(t.TempDir(), "x"), domain.Format("xml"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
