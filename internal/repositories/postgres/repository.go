package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db       *gorm.DB
	survey   repositories.SurveyRepository
	response repositories.ResponseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:       db,
		survey:   NewSurveyPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

// AutoMigrate creates or updates the tables for every model
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Survey{}, &models.Question{}, &models.Response{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (r *Repository) Survey() repositories.SurveyRepository {
	return r.survey
}

func (r *Repository) Response() repositories.ResponseRepository {
	return r.response
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
