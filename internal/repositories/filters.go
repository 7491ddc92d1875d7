package repositories

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

type SurveyFilters struct {
	Active    *bool  `json:"active"`
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "updated_at", "title"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type ResponseFilters struct {
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"` // 0 means no limit
	Offset   int        `json:"offset"`
}
