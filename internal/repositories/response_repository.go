package repositories

import (
	"context"

	"github.com/SAP-F-2025/chatask-service/internal/models"
)

// ResponseRepository persists submitted survey responses
type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	CreateBatch(ctx context.Context, responses []*models.Response) (int64, error) // Skips IDs that already exist
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListBySurvey(ctx context.Context, surveyID string, filters ResponseFilters) ([]*models.Response, int64, error)
	CountBySurvey(ctx context.Context, surveyID string) (int64, error)
}
