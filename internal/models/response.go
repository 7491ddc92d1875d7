package models

import (
	"time"

	"gorm.io/datatypes"
)

type MessageRole string

const (
	RoleAI   MessageRole = "ai"
	RoleUser MessageRole = "user"
)

type ConversationMessage struct {
	Role      MessageRole `json:"role" validate:"required,message_role"`
	Content   string      `json:"content" validate:"required"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChoiceAnswer holds the selected options for one question. Radio questions
// carry exactly one value.
type ChoiceAnswer struct {
	QuestionID string   `json:"question_id" validate:"required"`
	Values     []string `json:"values"`
}

type Response struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	SurveyID    string    `json:"survey_id" gorm:"not null;index;size:36"`
	SessionID   string    `json:"session_id" gorm:"size:64;index"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`

	ChoiceAnswers datatypes.JSONSlice[ChoiceAnswer] `json:"choice_answers" gorm:"type:jsonb"`

	// Follow-up interview
	AITheme        string                                   `json:"ai_theme" gorm:"type:text"`
	AIConversation datatypes.JSONSlice[ConversationMessage] `json:"ai_conversation" gorm:"type:jsonb"`
	AISummary      string                                   `json:"ai_summary" gorm:"type:text"`
	AIKeywords     datatypes.JSONSlice[string]              `json:"ai_keywords" gorm:"type:jsonb"`
}

func (Response) TableName() string {
	return "survey_responses"
}

// AnswerFor returns the answer to questionID, if any.
func (r *Response) AnswerFor(questionID string) (ChoiceAnswer, bool) {
	for _, answer := range r.ChoiceAnswers {
		if answer.QuestionID == questionID {
			return answer, true
		}
	}
	return ChoiceAnswer{}, false
}
