package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/ai"
	"github.com/SAP-F-2025/chatask-service/internal/events"
	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
)

// InterviewService runs the AI follow-up interview after the choice questions
type InterviewService interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*ai.Analysis, error)
	NextQuestion(ctx context.Context, req *NextQuestionRequest) (*ai.Turn, error)
}

// AnalyzeRequest names a stored survey, or carries the questions inline
type AnalyzeRequest struct {
	SurveyID      string                `json:"survey_id"`
	Questions     []models.Question     `json:"questions" validate:"required_without=SurveyID"`
	ChoiceAnswers []models.ChoiceAnswer `json:"choice_answers" validate:"dive"`
}

type NextQuestionRequest struct {
	SurveyID            string                       `json:"survey_id"`
	Theme               string                       `json:"theme" validate:"required,max=1000"`
	ConversationHistory []models.ConversationMessage `json:"conversation_history" validate:"dive"`
	MaxTurns            int                          `json:"max_turns" validate:"omitempty,min=1,max=20"`
}

type interviewService struct {
	interviewer     *ai.Interviewer
	surveys         SurveyService
	publisher       events.EventPublisher
	validator       *validator.Validator
	logger          *ServiceLogger
	defaultMaxTurns int
}

// NewInterviewService accepts a nil generator, in which case every call
// fails with ErrAIUnavailable.
func NewInterviewService(
	generator ai.TextGenerator,
	surveys SurveyService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
	defaultMaxTurns int,
) InterviewService {
	var interviewer *ai.Interviewer
	if generator != nil {
		interviewer = ai.NewInterviewer(generator)
	}
	if defaultMaxTurns <= 0 {
		defaultMaxTurns = ai.DefaultMaxTurns
	}
	return &interviewService{
		interviewer:     interviewer,
		surveys:         surveys,
		publisher:       publisher,
		validator:       validator,
		logger:          NewServiceLogger(logger, "interview"),
		defaultMaxTurns: defaultMaxTurns,
	}
}

func (s *interviewService) Analyze(ctx context.Context, req *AnalyzeRequest) (analysis *ai.Analysis, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "analyze_answers", "survey", req.SurveyID, time.Since(start), err)
	}()

	if s.interviewer == nil {
		return nil, ErrAIUnavailable
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	questions := req.Questions
	if req.SurveyID != "" {
		survey, err := s.surveys.GetByID(ctx, req.SurveyID)
		if err != nil {
			return nil, err
		}
		questions = survey.Questions
	}

	analysis, err = s.interviewer.Analyze(ctx, questions, req.ChoiceAnswers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterviewFailed, err)
	}
	return analysis, nil
}

func (s *interviewService) NextQuestion(ctx context.Context, req *NextQuestionRequest) (turn *ai.Turn, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "next_question", "survey", req.SurveyID, time.Since(start), err)
	}()

	if s.interviewer == nil {
		return nil, ErrAIUnavailable
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	maxTurns := req.MaxTurns
	if maxTurns == 0 {
		maxTurns = s.defaultMaxTurns
	}

	turn, err = s.interviewer.NextQuestion(ctx, req.ConversationHistory, req.Theme, maxTurns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterviewFailed, err)
	}

	if turn.IsComplete {
		event := events.NewInterviewCompletedEvent(req.Theme, turn.TurnNumber, turn.Keywords)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
		}
	}

	return turn, nil
}
