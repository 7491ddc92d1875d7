package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"gorm.io/gorm"
)

var sortableSurveyColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// notFound maps gorm's missing-record error to the repository sentinel
func notFound(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", resource, id, repositories.ErrNotFound)
	}
	return err
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

func surveyOrder(sortBy, sortOrder string) string {
	if !sortableSurveyColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return sortBy + " " + direction
}
