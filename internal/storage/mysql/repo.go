// Package mysql persists scraped review sets for cross-run reporting.
package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"gmaps_reviews/internal/domain"
)

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) UpsertReviews(ctx context.Context, featureID string, rs []domain.ReviewRecord) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*13) // 13 params per row
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			featureID,
			rv.ReviewID,
			nullStr(rv.UserName),
			nullStr(rv.UserURL),
			rv.UserReviews,
			rv.Rating,
			nullStr(rv.RelativeDate),
			nullTime(rv.TextDate),
			nullStr(rv.Text),
			nullStr(rv.ResponseText),
			nullStr(rv.ResponseRelativeDate),
			nullTime(rv.ResponseTextDate),
			rv.RetrievalDate,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (s *Store) LogFailure(ctx context.Context, featureID, reason string) error {
	_, err := s.db.ExecContext(ctx, insertFailureSQL, featureID, reason)
	return err
}

func (s *Store) ListReviews(ctx context.Context, featureID string, limit int) ([]domain.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, listReviewsSQL, featureID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewRecord
	for rows.Next() {
		var rv domain.ReviewRecord
		var (
			userName     sql.NullString
			userURL      sql.NullString
			userReviews  sql.NullInt64
			rating       sql.NullFloat64
			relativeDate sql.NullString
			textDate     sql.NullTime
			text         sql.NullString
			respText     sql.NullString
			respRelative sql.NullString
			respTextDate sql.NullTime
		)
		if err := rows.Scan(
			&rv.ReviewID,
			&userName,
			&userURL,
			&userReviews,
			&rating,
			&relativeDate,
			&textDate,
			&text,
			&respText,
			&respRelative,
			&respTextDate,
			&rv.RetrievalDate,
		); err != nil {
			return nil, err
		}

		rv.UserName = userName.String
		rv.UserURL = userURL.String
		rv.UserReviews = int(userReviews.Int64)
		rv.Rating = rating.Float64
		rv.RelativeDate = relativeDate.String
		if textDate.Valid {
			t := textDate.Time
			rv.TextDate = &t
		}
		rv.Text = text.String
		rv.ResponseText = respText.String
		rv.ResponseRelativeDate = respRelative.String
		if respTextDate.Valid {
			t := respTextDate.Time
			rv.ResponseTextDate = &t
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
