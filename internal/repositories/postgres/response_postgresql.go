package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

func (r *ResponsePostgreSQL) Create(ctx context.Context, response *models.Response) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *ResponsePostgreSQL) CreateBatch(ctx context.Context, responses []*models.Response) (int64, error) {
	if len(responses) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&responses)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to create responses: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, id string) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).First(&response, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "response", id)
	}
	return &response, nil
}

// ListBySurvey returns responses oldest first, the order used by exports
func (r *ResponsePostgreSQL) ListBySurvey(ctx context.Context, surveyID string, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Response{}).Where("survey_id = ?", surveyID)

	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count responses: %w", err)
	}

	var responses []*models.Response
	err := applyPagination(query, filters.Limit, filters.Offset).
		Order("submitted_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list responses: %w", err)
	}

	return responses, total, nil
}

func (r *ResponsePostgreSQL) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Response{}).Where("survey_id = ?", surveyID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
