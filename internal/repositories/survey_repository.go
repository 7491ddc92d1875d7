package repositories

import (
	"context"

	"github.com/SAP-F-2025/chatask-service/internal/models"
)

// SurveyRepository persists surveys together with their questions
type SurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	GetByID(ctx context.Context, id string) (*models.Survey, error) // Includes questions in order
	List(ctx context.Context, filters SurveyFilters) ([]*models.Survey, int64, error)
	Update(ctx context.Context, survey *models.Survey) error // Replaces the question set
	Delete(ctx context.Context, id string) error             // Removes questions and responses too
	Exists(ctx context.Context, id string) (bool, error)
}
