package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionRadio    QuestionType = "radio"    // single choice
	QuestionCheckbox QuestionType = "checkbox" // multiple choice
)

type Survey struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"not null;size:200;index"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

// Question is a canonical survey question. Only single and multiple choice
// questions exist in this model.
type Question struct {
	ID           string                      `json:"id" gorm:"primaryKey;size:36"`
	SurveyID     string                      `json:"survey_id" gorm:"not null;index;size:36"`
	Order        int                         `json:"order" gorm:"column:sort_order;not null"`
	Type         QuestionType                `json:"type" gorm:"not null;size:20"`
	QuestionText string                      `json:"question_text" gorm:"type:text"`
	Options      datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb"`
	Required     bool                        `json:"required" gorm:"default:false"`
}

func (Survey) TableName() string {
	return "surveys"
}

func (Question) TableName() string {
	return "survey_questions"
}

// StampSurveyID assigns the survey's ID to every question and reindexes order.
func (s *Survey) StampSurveyID() {
	for i := range s.Questions {
		s.Questions[i].SurveyID = s.ID
		s.Questions[i].Order = i
	}
}

// QuestionByID returns the question with the given ID, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
