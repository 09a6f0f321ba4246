package domain

import "time"

// ReviewRecord is one normalized review from the listing endpoint. Every field
// has a defined default; the decoder fills what it can and leaves the rest.
// translated_text, likes and translated_response_text are reserved upstream
// slots carried for schema stability.
type ReviewRecord struct {
	ReviewID               string     `json:"review_id" parquet:"review_id"`
	UserName               string     `json:"user_name" parquet:"user_name"`
	UserURL                string     `json:"user_url" parquet:"user_url"`
	UserReviews            int        `json:"user_reviews" parquet:"user_reviews"`
	Rating                 float64    `json:"rating" parquet:"rating"`
	RelativeDate           string     `json:"relative_date" parquet:"relative_date"`
	Text                   string     `json:"text" parquet:"text"`
	TextDate               *time.Time `json:"text_date" parquet:"text_date,optional"`
	TranslatedText         string     `json:"translated_text" parquet:"translated_text"`
	Likes                  int        `json:"likes" parquet:"likes"`
	ResponseText           string     `json:"response_text" parquet:"response_text"`
	ResponseRelativeDate   string     `json:"response_relative_date" parquet:"response_relative_date"`
	ResponseTextDate       *time.Time `json:"response_text_date" parquet:"response_text_date,optional"`
	TranslatedResponseText string     `json:"translated_response_text" parquet:"translated_response_text"`
	RetrievalDate          time.Time  `json:"retrieval_date" parquet:"retrieval_date"`
}

// Format selects the sink serialization.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)
