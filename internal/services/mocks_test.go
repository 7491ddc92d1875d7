package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/cache"
	"github.com/SAP-F-2025/chatask-service/internal/events"
	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
	"github.com/stretchr/testify/mock"
)

// MockSurveyRepository is a mock implementation of SurveyRepository
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	return m.Called(ctx, survey).Error(0)
}

func (m *MockSurveyRepository) GetByID(ctx context.Context, id string) (*models.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockSurveyRepository) List(ctx context.Context, filters repositories.SurveyFilters) ([]*models.Survey, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Survey), args.Get(1).(int64), args.Error(2)
}

func (m *MockSurveyRepository) Update(ctx context.Context, survey *models.Survey) error {
	return m.Called(ctx, survey).Error(0)
}

func (m *MockSurveyRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSurveyRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, response *models.Response) error {
	return m.Called(ctx, response).Error(0)
}

func (m *MockResponseRepository) CreateBatch(ctx context.Context, responses []*models.Response) (int64, error) {
	args := m.Called(ctx, responses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, id string) (*models.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) ListBySurvey(ctx context.Context, surveyID string, filters repositories.ResponseFilters) ([]*models.Response, int64, error) {
	args := m.Called(ctx, surveyID, filters)
	return args.Get(0).([]*models.Response), args.Get(1).(int64), args.Error(2)
}

func (m *MockResponseRepository) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	args := m.Called(ctx, surveyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRepository bundles the repository mocks
type MockRepository struct {
	surveyRepo   *MockSurveyRepository
	responseRepo *MockResponseRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		surveyRepo:   &MockSurveyRepository{},
		responseRepo: &MockResponseRepository{},
	}
}

func (m *MockRepository) Survey() repositories.SurveyRepository     { return m.surveyRepo }
func (m *MockRepository) Response() repositories.ResponseRepository { return m.responseRepo }
func (m *MockRepository) Ping(ctx context.Context) error            { return nil }
func (m *MockRepository) Close() error                              { return nil }

// MockCache is a mock implementation of CacheService
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceFixture struct {
	repo      *MockRepository
	publisher *events.MockEventPublisher
	validator *validator.Validator
	surveys   SurveyService
}

func newServiceFixture() *serviceFixture {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	v := validator.New()
	return &serviceFixture{
		repo:      repo,
		publisher: publisher,
		validator: v,
		surveys:   NewSurveyService(repo, cache.NewNoopCache(), publisher, v, testLogger(), time.Minute),
	}
}

func sampleSurvey() *models.Survey {
	return &models.Survey{
		ID:       "survey-1",
		Title:    "Lunch survey",
		IsActive: true,
		Questions: []models.Question{
			{ID: "q1", SurveyID: "survey-1", Order: 0, Type: models.QuestionRadio, QuestionText: "Main dish", Options: []string{"Rice", "Bread"}, Required: true},
			{ID: "q2", SurveyID: "survey-1", Order: 1, Type: models.QuestionCheckbox, QuestionText: "Drinks", Options: []string{"Tea", "Coffee"}},
		},
	}
}
