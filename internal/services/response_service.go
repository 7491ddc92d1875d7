package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/events"
	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
	"github.com/google/uuid"
)

type ResponseService interface {
	Submit(ctx context.Context, surveyID string, req *SubmitResponseRequest) (*models.Response, error)
	GetByID(ctx context.Context, id string) (*models.Response, error)
	ListBySurvey(ctx context.Context, surveyID string, filters repositories.ResponseFilters) (*ResponseListResponse, error)
}

type SubmitResponseRequest struct {
	SessionID      string                       `json:"session_id" validate:"max=64"`
	ChoiceAnswers  []models.ChoiceAnswer        `json:"choice_answers" validate:"dive"`
	AITheme        string                       `json:"ai_theme" validate:"max=1000"`
	AIConversation []models.ConversationMessage `json:"ai_conversation" validate:"dive"`
	AISummary      string                       `json:"ai_summary" validate:"max=5000"`
	AIKeywords     []string                     `json:"ai_keywords" validate:"max=50"`
}

type ResponseListResponse struct {
	Responses []*models.Response `json:"responses"`
	Total     int64              `json:"total"`
}

type responseService struct {
	repo      repositories.Repository
	surveys   SurveyService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewResponseService(
	repo repositories.Repository,
	surveys SurveyService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) ResponseService {
	return &responseService{
		repo:      repo,
		surveys:   surveys,
		publisher: publisher,
		validator: validator,
		logger:    NewServiceLogger(logger, "response"),
	}
}

func (s *responseService) Submit(ctx context.Context, surveyID string, req *SubmitResponseRequest) (response *models.Response, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if response != nil {
			id = response.ID
		}
		s.logger.LogOperation(ctx, "submit_response", "response", id, time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.IsActive {
		return nil, NewBusinessRuleError("survey_inactive", ErrSurveyInactive.Error(), map[string]interface{}{
			"survey_id": surveyID,
		})
	}

	if errs := s.validator.Question().ValidateAnswers(survey, req.ChoiceAnswers); len(errs) > 0 {
		s.logger.LogValidationError(ctx, "submit_response", errs)
		return nil, errs
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "session-" + uuid.NewString()
	}

	now := time.Now().UTC()
	conversation := make([]models.ConversationMessage, 0, len(req.AIConversation))
	for _, msg := range req.AIConversation {
		if msg.Timestamp.IsZero() {
			msg.Timestamp = now
		}
		conversation = append(conversation, msg)
	}

	response = &models.Response{
		ID:             uuid.NewString(),
		SurveyID:       survey.ID,
		SessionID:      sessionID,
		SubmittedAt:    now,
		ChoiceAnswers:  req.ChoiceAnswers,
		AITheme:        req.AITheme,
		AIConversation: conversation,
		AISummary:      req.AISummary,
		AIKeywords:     req.AIKeywords,
	}

	if err := s.repo.Response().Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	event := events.NewResponseSubmittedEvent(response.ID, survey.ID, sessionID, now, response.AISummary != "")
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}

	return response, nil
}

func (s *responseService) GetByID(ctx context.Context, id string) (*models.Response, error) {
	response, err := s.repo.Response().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return response, nil
}

func (s *responseService) ListBySurvey(ctx context.Context, surveyID string, filters repositories.ResponseFilters) (*ResponseListResponse, error) {
	if _, err := s.surveys.GetByID(ctx, surveyID); err != nil {
		return nil, err
	}

	responses, total, err := s.repo.Response().ListBySurvey(ctx, surveyID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	return &ResponseListResponse{
		Responses: responses,
		Total:     total,
	}, nil
}
