package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (feature_id, review_id, user_name, user_url, user_reviews, rating, relative_date, text_date, `text`, response_text, response_relative_date, response_text_date, retrieval_date)\nVALUES "

// Use VALUES(col) for broad compatibility; COALESCE keeps old value if new is NULL.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  user_name              = COALESCE(VALUES(user_name), reviews.user_name),\n" +
	"  user_url               = COALESCE(VALUES(user_url), reviews.user_url),\n" +
	"  user_reviews           = COALESCE(VALUES(user_reviews), reviews.user_reviews),\n" +
	"  rating                 = COALESCE(VALUES(rating), reviews.rating),\n" +
	"  relative_date          = COALESCE(VALUES(relative_date), reviews.relative_date),\n" +
	"  text_date              = COALESCE(VALUES(text_date), reviews.text_date),\n" +
	"  `text`                 = COALESCE(VALUES(`text`), reviews.`text`),\n" +
	"  response_text          = COALESCE(VALUES(response_text), reviews.response_text),\n" +
	"  response_relative_date = COALESCE(VALUES(response_relative_date), reviews.response_relative_date),\n" +
	"  response_text_date     = COALESCE(VALUES(response_text_date), reviews.response_text_date),\n" +
	"  retrieval_date         = VALUES(retrieval_date)\n"

const insertFailureSQL = `
INSERT INTO scrape_failures (feature_id, reason)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE reason = VALUES(reason), seen_at = CURRENT_TIMESTAMP
`

const listReviewsSQL = `
SELECT
  review_id,
  user_name,
  user_url,
  user_reviews,
  rating,
  relative_date,
  text_date,
  text,
  response_text,
  response_relative_date,
  response_text_date,
  retrieval_date
FROM reviews
WHERE feature_id = ?
ORDER BY retrieval_date DESC, review_id
LIMIT ?
`
