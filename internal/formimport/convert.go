package formimport

import (
	"fmt"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/google/uuid"
)

// Labels localizes the warnings produced for unsupported questions.
type Labels struct {
	Types   map[QuestionType]string
	Unknown string
	// Format receives the 1-based position, the question text and the type label.
	Format string
}

var (
	LabelsJA = Labels{
		Types: map[QuestionType]string{
			TypeText:     "テキスト入力",
			TypeTextarea: "段落テキスト",
			TypeDropdown: "プルダウン",
			TypeScale:    "スケール",
			TypeGrid:     "グリッド",
			TypeDate:     "日付",
			TypeTime:     "時刻",
		},
		Unknown: "不明な形式",
		Format:  "質問 %d \"%s\" (%s) はサポートされていないためスキップされました。",
	}

	LabelsEN = Labels{
		Types: map[QuestionType]string{
			TypeText:     "short text",
			TypeTextarea: "long text",
			TypeDropdown: "dropdown",
			TypeScale:    "linear scale",
			TypeGrid:     "grid",
			TypeDate:     "date",
			TypeTime:     "time",
		},
		Unknown: "unrecognized format",
		Format:  "Question %d \"%s\" (%s) is not supported and was skipped.",
	}
)

// LabelsFor returns the labels for locale, defaulting to Japanese.
func LabelsFor(locale string) Labels {
	if locale == "en" {
		return LabelsEN
	}
	return LabelsJA
}

func (l Labels) label(t QuestionType) string {
	if label, ok := l.Types[t]; ok {
		return label
	}
	return l.Unknown
}

// Warning builds the message for an unsupported question at 1-based position.
func (l Labels) Warning(position int, question ParsedQuestion) string {
	return fmt.Sprintf(l.Format, position, question.QuestionText, l.label(question.Type))
}

// Conversion is the result of turning a parsed form into canonical questions.
// SurveyID on every question is left blank for the caller to stamp.
type Conversion struct {
	Survey   *models.Survey
	Warnings []string
}

// ConvertToSurvey keeps radio and checkbox questions and warns about the rest.
// Every parsed question ends up either in Survey.Questions or in Warnings.
func ConvertToSurvey(form *ParsedFormData, labels Labels) *Conversion {
	survey := &models.Survey{
		Title:       form.Title,
		Description: form.Description,
		IsActive:    true,
		Questions:   []models.Question{},
	}
	warnings := []string{}

	for index, question := range form.Questions {
		questionType, supported := canonicalType(question.Type)
		if !supported {
			warnings = append(warnings, labels.Warning(index+1, question))
			continue
		}

		options := append([]string(nil), question.Options...)
		if len(options) == 0 {
			options = []string{""}
		}

		survey.Questions = append(survey.Questions, models.Question{
			ID:           uuid.NewString(),
			Order:        len(survey.Questions),
			Type:         questionType,
			QuestionText: question.QuestionText,
			Options:      options,
			Required:     question.Required,
		})
	}

	return &Conversion{Survey: survey, Warnings: warnings}
}

func canonicalType(t QuestionType) (models.QuestionType, bool) {
	switch t {
	case TypeRadio:
		return models.QuestionRadio, true
	case TypeCheckbox:
		return models.QuestionCheckbox, true
	default:
		return "", false
	}
}
