package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"gorm.io/gorm"
)

type SurveyPostgreSQL struct {
	db *gorm.DB
}

func NewSurveyPostgreSQL(db *gorm.DB) repositories.SurveyRepository {
	return &SurveyPostgreSQL{db: db}
}

// Create inserts the survey and its questions in one transaction
func (s *SurveyPostgreSQL) Create(ctx context.Context, survey *models.Survey) error {
	survey.StampSurveyID()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return fmt.Errorf("failed to create survey: %w", err)
		}
		return nil
	})
}

// GetByID loads a survey with its questions sorted by order
func (s *SurveyPostgreSQL) GetByID(ctx context.Context, id string) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&survey, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "survey", id)
	}
	return &survey, nil
}

func (s *SurveyPostgreSQL) List(ctx context.Context, filters repositories.SurveyFilters) ([]*models.Survey, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Survey{})

	if filters.Active != nil {
		query = query.Where("is_active = ?", *filters.Active)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count surveys: %w", err)
	}

	var surveys []*models.Survey
	err := applyPagination(query, filters.Limit, filters.Offset).
		Order(surveyOrder(filters.SortBy, filters.SortOrder)).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&surveys).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list surveys: %w", err)
	}

	return surveys, total, nil
}

// Update saves survey fields and replaces its questions
func (s *SurveyPostgreSQL) Update(ctx context.Context, survey *models.Survey) error {
	survey.StampSurveyID()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Survey{}).
			Where("id = ?", survey.ID).
			Updates(map[string]interface{}{
				"title":       survey.Title,
				"description": survey.Description,
				"is_active":   survey.IsActive,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update survey: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("survey %s: %w", survey.ID, repositories.ErrNotFound)
		}

		if err := tx.Where("survey_id = ?", survey.ID).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to remove old questions: %w", err)
		}
		if len(survey.Questions) > 0 {
			if err := tx.Create(&survey.Questions).Error; err != nil {
				return fmt.Errorf("failed to create questions: %w", err)
			}
		}
		return nil
	})
}

// Delete removes the survey with its questions and responses
func (s *SurveyPostgreSQL) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).Delete(&models.Response{}).Error; err != nil {
			return fmt.Errorf("failed to delete responses: %w", err)
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Survey{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete survey: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("survey %s: %w", id, repositories.ErrNotFound)
		}
		return nil
	})
}

func (s *SurveyPostgreSQL) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Survey{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
