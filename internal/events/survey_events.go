package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of survey events
type EventType string

const (
	EventSurveyCreated      EventType = "survey.created"
	EventSurveyImported     EventType = "survey.imported"
	EventSurveyDeleted      EventType = "survey.deleted"
	EventResponseSubmitted  EventType = "response.submitted"
	EventInterviewCompleted EventType = "interview.completed"
)

const (
	eventSource  = "chatask-service"
	eventVersion = "1.0"
)

// SurveyEvent is the envelope for every event this service emits
type SurveyEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SurveyCreatedEvent struct {
	SurveyID      string `json:"survey_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type SurveyImportedEvent struct {
	SurveyID      string `json:"survey_id,omitempty"` // empty unless the import was saved
	FormID        string `json:"form_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	WarningCount  int    `json:"warning_count"`
}

type SurveyDeletedEvent struct {
	SurveyID string `json:"survey_id"`
}

type ResponseSubmittedEvent struct {
	ResponseID  string    `json:"response_id"`
	SurveyID    string    `json:"survey_id"`
	SessionID   string    `json:"session_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	HasSummary  bool      `json:"has_summary"`
}

type InterviewCompletedEvent struct {
	Theme        string   `json:"theme"`
	Turns        int      `json:"turns"`
	KeywordCount int      `json:"keyword_count"`
	Keywords     []string `json:"keywords"`
}

func newEvent(eventType EventType, data interface{}) *SurveyEvent {
	return &SurveyEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewSurveyCreatedEvent(surveyID, title string, questionCount int) *SurveyEvent {
	return newEvent(EventSurveyCreated, SurveyCreatedEvent{
		SurveyID:      surveyID,
		Title:         title,
		QuestionCount: questionCount,
	})
}

func NewSurveyImportedEvent(surveyID, formID, title string, questionCount, warningCount int) *SurveyEvent {
	return newEvent(EventSurveyImported, SurveyImportedEvent{
		SurveyID:      surveyID,
		FormID:        formID,
		Title:         title,
		QuestionCount: questionCount,
		WarningCount:  warningCount,
	})
}

func NewSurveyDeletedEvent(surveyID string) *SurveyEvent {
	return newEvent(EventSurveyDeleted, SurveyDeletedEvent{SurveyID: surveyID})
}

func NewResponseSubmittedEvent(responseID, surveyID, sessionID string, submittedAt time.Time, hasSummary bool) *SurveyEvent {
	return newEvent(EventResponseSubmitted, ResponseSubmittedEvent{
		ResponseID:  responseID,
		SurveyID:    surveyID,
		SessionID:   sessionID,
		SubmittedAt: submittedAt,
		HasSummary:  hasSummary,
	})
}

func NewInterviewCompletedEvent(theme string, turns int, keywords []string) *SurveyEvent {
	return newEvent(EventInterviewCompleted, InterviewCompletedEvent{
		Theme:        theme,
		Turns:        turns,
		KeywordCount: len(keywords),
		Keywords:     keywords,
	})
}
