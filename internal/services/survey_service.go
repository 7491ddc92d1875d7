package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/cache"
	"github.com/SAP-F-2025/chatask-service/internal/events"
	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
	"github.com/google/uuid"
)

const defaultListLimit = 20

type SurveyService interface {
	Create(ctx context.Context, req *CreateSurveyRequest) (*models.Survey, error)
	GetByID(ctx context.Context, id string) (*models.Survey, error)
	List(ctx context.Context, filters repositories.SurveyFilters) (*SurveyListResponse, error)
	Update(ctx context.Context, id string, req *UpdateSurveyRequest) (*models.Survey, error)
	Delete(ctx context.Context, id string) error

	// Save persists an already built survey, such as one converted from a form
	Save(ctx context.Context, survey *models.Survey) (*models.Survey, error)
	// ImportFromJSON restores a document produced by the JSON export
	ImportFromJSON(ctx context.Context, data []byte) (*JSONImportResult, error)
}

// ===== REQUESTS AND RESPONSES =====

type QuestionRequest struct {
	Type         models.QuestionType `json:"type" validate:"required,question_type"`
	QuestionText string              `json:"question_text" validate:"max=2000"`
	Options      []string            `json:"options" validate:"max=100"`
	Required     bool                `json:"required"`
}

type CreateSurveyRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"max=5000"`
	Questions   []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type UpdateSurveyRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"max=5000"`
	IsActive    *bool             `json:"is_active"`
	Questions   []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type SurveyListResponse struct {
	Surveys []*models.Survey `json:"surveys"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// SurveyDocument is the JSON export format
type SurveyDocument struct {
	Survey     *models.Survey     `json:"survey"`
	Responses  []*models.Response `json:"responses"`
	ExportedAt time.Time          `json:"exported_at"`
}

type JSONImportResult struct {
	Survey            *models.Survey `json:"survey"`
	ResponsesImported int64          `json:"responses_imported"`
	Replaced          bool           `json:"replaced"`
}

// ===== IMPLEMENTATION =====

type surveyService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
	cacheTTL  time.Duration
}

func NewSurveyService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
	cacheTTL time.Duration,
) SurveyService {
	return &surveyService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: validator,
		logger:    NewServiceLogger(logger, "survey"),
		cacheTTL:  cacheTTL,
	}
}

func (s *surveyService) Create(ctx context.Context, req *CreateSurveyRequest) (survey *models.Survey, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "create_survey", "survey", surveyID(survey), time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	survey = &models.Survey{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
		Questions:   buildQuestions(req.Questions),
	}

	return s.persistNew(ctx, survey)
}

func (s *surveyService) Save(ctx context.Context, survey *models.Survey) (saved *models.Survey, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "save_survey", "survey", surveyID(saved), time.Since(start), err)
	}()

	if survey.ID == "" {
		survey.ID = uuid.NewString()
	}
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = uuid.NewString()
		}
	}

	return s.persistNew(ctx, survey)
}

func (s *surveyService) persistNew(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	survey.StampSurveyID()
	if errs := s.validator.Question().ValidateSurvey(survey); len(errs) > 0 {
		s.logger.LogValidationError(ctx, "create_survey", errs)
		return nil, errs
	}

	if err := s.repo.Survey().Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}

	s.invalidateLists(ctx)
	s.publish(ctx, events.NewSurveyCreatedEvent(survey.ID, survey.Title, len(survey.Questions)))

	return survey, nil
}

// GetByID reads through the cache
func (s *surveyService) GetByID(ctx context.Context, id string) (*models.Survey, error) {
	key := cache.SurveyKey(id)

	var cached models.Survey
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn(ctx, "Survey cache read failed", "survey_id", id, "error", err)
	}

	survey, err := s.repo.Survey().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}

	if err := s.cache.Set(ctx, key, survey, s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "Survey cache write failed", "survey_id", id, "error", err)
	}

	return survey, nil
}

func (s *surveyService) List(ctx context.Context, filters repositories.SurveyFilters) (*SurveyListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	key := cache.SurveyListKey(listFingerprint(filters))
	var cached SurveyListResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	surveys, total, err := s.repo.Survey().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}

	resp := &SurveyListResponse{
		Surveys: surveys,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "Survey list cache write failed", "error", err)
	}

	return resp, nil
}

func (s *surveyService) Update(ctx context.Context, id string, req *UpdateSurveyRequest) (survey *models.Survey, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "update_survey", "survey", id, time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	current, err := s.repo.Survey().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}

	current.Title = req.Title
	current.Description = req.Description
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	current.Questions = buildQuestions(req.Questions)
	current.StampSurveyID()

	if errs := s.validator.Question().ValidateSurvey(current); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.Survey().Update(ctx, current); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}

	s.invalidate(ctx, id)
	return current, nil
}

func (s *surveyService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "delete_survey", "survey", id, time.Since(start), err)
	}()

	if err := s.repo.Survey().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return fmt.Errorf("failed to delete survey: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.NewSurveyDeletedEvent(id))
	return nil
}

// ImportFromJSON upserts the document's survey and adds its responses.
// Responses whose IDs already exist are skipped.
func (s *surveyService) ImportFromJSON(ctx context.Context, data []byte) (result *JSONImportResult, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if result != nil {
			id = surveyID(result.Survey)
		}
		s.logger.LogOperation(ctx, "import_survey_json", "survey", id, time.Since(start), err)
	}()

	var doc SurveyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Survey == nil {
		return nil, fmt.Errorf("%w: survey is missing", ErrInvalidDocument)
	}

	survey := doc.Survey
	if survey.ID == "" {
		survey.ID = uuid.NewString()
	}
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = uuid.NewString()
		}
	}
	survey.StampSurveyID()

	if errs := s.validator.Question().ValidateSurvey(survey); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.Survey().Exists(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check survey: %w", err)
	}
	if exists {
		err = s.repo.Survey().Update(ctx, survey)
	} else {
		err = s.repo.Survey().Create(ctx, survey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store survey: %w", err)
	}
	s.invalidate(ctx, survey.ID)

	responses := make([]*models.Response, 0, len(doc.Responses))
	for _, r := range doc.Responses {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.SubmittedAt.IsZero() {
			r.SubmittedAt = time.Now()
		}
		r.SurveyID = survey.ID
		responses = append(responses, r)
	}

	imported, err := s.repo.Response().CreateBatch(ctx, responses)
	if err != nil {
		return nil, fmt.Errorf("failed to store responses: %w", err)
	}

	if !exists {
		s.publish(ctx, events.NewSurveyCreatedEvent(survey.ID, survey.Title, len(survey.Questions)))
	}

	return &JSONImportResult{
		Survey:            survey,
		ResponsesImported: imported,
		Replaced:          exists,
	}, nil
}

// ===== HELPERS =====

// buildQuestions assigns fresh IDs. A question without options gets one
// empty option so it can still be edited.
func buildQuestions(reqs []QuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(reqs))
	for i, q := range reqs {
		options := append([]string(nil), q.Options...)
		if len(options) == 0 {
			options = []string{""}
		}
		questions = append(questions, models.Question{
			ID:           uuid.NewString(),
			Order:        i,
			Type:         q.Type,
			QuestionText: q.QuestionText,
			Options:      options,
			Required:     q.Required,
		})
	}
	return questions
}

func (s *surveyService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.SurveyKey(id)); err != nil {
		s.logger.Warn(ctx, "Survey cache invalidation failed", "survey_id", id, "error", err)
	}
	s.invalidateLists(ctx)
}

func (s *surveyService) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, cache.SurveyListPattern()); err != nil {
		s.logger.Warn(ctx, "Survey list cache invalidation failed", "error", err)
	}
}

func (s *surveyService) publish(ctx context.Context, event *events.SurveyEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func listFingerprint(f repositories.SurveyFilters) string {
	active := "any"
	if f.Active != nil {
		active = fmt.Sprint(*f.Active)
	}
	return fmt.Sprintf("active=%s:q=%s:l=%d:o=%d:s=%s:%s", active, f.Search, f.Limit, f.Offset, f.SortBy, f.SortOrder)
}

func surveyID(survey *models.Survey) string {
	if survey == nil {
		return ""
	}
	return survey.ID
}
