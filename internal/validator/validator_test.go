package validator

import (
	"testing"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionInput struct {
	Type    models.QuestionType `json:"type" validate:"required,question_type"`
	Options []string            `json:"options" validate:"required,min=1"`
}

type surveyInput struct {
	Title     string          `json:"title" validate:"required,max=200"`
	Questions []questionInput `json:"questions" validate:"required,min=1,dive"`
	Format    string          `json:"format" validate:"omitempty,export_format"`
}

type messageInput struct {
	Role models.MessageRole `json:"role" validate:"required,message_role"`
}

func TestValidator_ValidateStruct(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		err := v.ValidateStruct(surveyInput{
			Title:     "Title",
			Questions: []questionInput{{Type: models.QuestionRadio, Options: []string{"a"}}},
			Format:    "csv",
		})
		assert.NoError(t, err)
	})

	t.Run("custom tags and json names", func(t *testing.T) {
		err := v.ValidateStruct(surveyInput{
			Title:     "Title",
			Questions: []questionInput{{Type: "text", Options: []string{"a"}}},
			Format:    "pdf",
		})

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 2)
		assert.Equal(t, "questions[0].type", errs[0].Field)
		assert.Equal(t, "question_type", errs[0].Rule)
		assert.Equal(t, "format", errs[1].Field)
	})

	t.Run("message role", func(t *testing.T) {
		assert.NoError(t, v.ValidateStruct(messageInput{Role: models.RoleAI}))
		assert.Error(t, v.ValidateStruct(messageInput{Role: "system"}))
	})
}

func testSurvey() *models.Survey {
	return &models.Survey{
		ID:    "s1",
		Title: "Lunch",
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionRadio, Options: []string{"Rice", "Bread"}, Required: true},
			{ID: "q2", Type: models.QuestionCheckbox, Options: []string{"Tea", "Coffee", "Water"}},
		},
	}
}

func TestQuestionValidator_ValidateSurvey(t *testing.T) {
	v := NewQuestionValidator()

	assert.Empty(t, v.ValidateSurvey(testSurvey()))

	broken := &models.Survey{Questions: []models.Question{
		{ID: "dup", Type: "dropdown", Options: []string{"a"}},
		{ID: "dup", Type: models.QuestionRadio},
	}}
	errs := v.ValidateSurvey(broken)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"title", "questions[0].type", "questions[1].options", "questions[1].id"}, fields)

	assert.Len(t, v.ValidateSurvey(&models.Survey{Title: "Empty"}), 1)
}

func TestQuestionValidator_ValidateAnswers(t *testing.T) {
	v := NewQuestionValidator()
	survey := testSurvey()

	t.Run("valid answers", func(t *testing.T) {
		errs := v.ValidateAnswers(survey, []models.ChoiceAnswer{
			{QuestionID: "q1", Values: []string{"Rice"}},
			{QuestionID: "q2", Values: []string{"Tea", "Water"}},
		})
		assert.Empty(t, errs)
	})

	t.Run("optional question may be skipped", func(t *testing.T) {
		errs := v.ValidateAnswers(survey, []models.ChoiceAnswer{{QuestionID: "q1", Values: []string{"Bread"}}})
		assert.Empty(t, errs)
	})

	t.Run("required question missing", func(t *testing.T) {
		errs := v.ValidateAnswers(survey, nil)
		require.Len(t, errs, 1)
		assert.Equal(t, "q1", errs[0].Value)
	})

	t.Run("radio with two values", func(t *testing.T) {
		errs := v.ValidateAnswers(survey, []models.ChoiceAnswer{{QuestionID: "q1", Values: []string{"Rice", "Bread"}}})
		require.Len(t, errs, 1)
		assert.Equal(t, "choice_answers[0].values", errs[0].Field)
	})

	t.Run("unknown question and option", func(t *testing.T) {
		errs := v.ValidateAnswers(survey, []models.ChoiceAnswer{
			{QuestionID: "q1", Values: []string{"Noodles"}},
			{QuestionID: "q9", Values: []string{"x"}},
		})
		assert.Len(t, errs, 2)
	})
}
