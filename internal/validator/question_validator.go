package validator

import (
	"fmt"
	"slices"

	"github.com/SAP-F-2025/chatask-service/internal/errors"
	"github.com/SAP-F-2025/chatask-service/internal/models"
)

// QuestionValidator checks survey structure and submitted answers against it
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateSurvey checks business rules that struct tags cannot express
func (v *QuestionValidator) ValidateSurvey(survey *models.Survey) ValidationErrors {
	var errs ValidationErrors

	if survey.Title == "" {
		errs = append(errs, *errors.NewValidationError("title", "is required", nil))
	}
	if len(survey.Questions) == 0 {
		errs = append(errs, *errors.NewValidationError("questions", "must contain at least one question", 0))
	}

	seen := make(map[string]bool, len(survey.Questions))
	for i, q := range survey.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.Type != models.QuestionRadio && q.Type != models.QuestionCheckbox {
			errs = append(errs, *errors.NewValidationErrorWithRule(field+".type", "must be a valid question type (radio, checkbox)", "question_type", q.Type))
		}
		if len(q.Options) == 0 {
			errs = append(errs, *errors.NewValidationError(field+".options", "must contain at least one option", nil))
		}
		if q.ID != "" {
			if seen[q.ID] {
				errs = append(errs, *errors.NewValidationError(field+".id", "is duplicated", q.ID))
			}
			seen[q.ID] = true
		}
	}

	return errs
}

// ValidateAnswers checks answers against the survey's questions
func (v *QuestionValidator) ValidateAnswers(survey *models.Survey, answers []models.ChoiceAnswer) ValidationErrors {
	var errs ValidationErrors

	answered := make(map[string]models.ChoiceAnswer, len(answers))
	for i, answer := range answers {
		field := fmt.Sprintf("choice_answers[%d]", i)
		question := survey.QuestionByID(answer.QuestionID)
		if question == nil {
			errs = append(errs, *errors.NewValidationError(field+".question_id", "does not belong to this survey", answer.QuestionID))
			continue
		}
		if _, dup := answered[answer.QuestionID]; dup {
			errs = append(errs, *errors.NewValidationError(field+".question_id", "is answered more than once", answer.QuestionID))
			continue
		}
		answered[answer.QuestionID] = answer

		if question.Type == models.QuestionRadio && len(answer.Values) > 1 {
			errs = append(errs, *errors.NewValidationError(field+".values", "must contain a single value for a radio question", len(answer.Values)))
		}
		for _, value := range answer.Values {
			if !slices.Contains(question.Options, value) {
				errs = append(errs, *errors.NewValidationError(field+".values", "contains an unknown option", value))
			}
		}
	}

	for _, question := range survey.Questions {
		if !question.Required {
			continue
		}
		if answer, ok := answered[question.ID]; !ok || len(answer.Values) == 0 {
			errs = append(errs, *errors.NewValidationError("choice_answers", "required question is not answered", question.ID))
		}
	}

	return errs
}
