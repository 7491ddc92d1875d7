package formimport

// QuestionType is the kind of a question as understood from the source form.
type QuestionType string

const (
	TypeRadio    QuestionType = "radio"
	TypeCheckbox QuestionType = "checkbox"
	TypeText     QuestionType = "text"
	TypeTextarea QuestionType = "textarea"
	TypeDropdown QuestionType = "dropdown"
	TypeScale    QuestionType = "scale"
	TypeGrid     QuestionType = "grid"
	TypeDate     QuestionType = "date"
	TypeTime     QuestionType = "time"
	TypeUnknown  QuestionType = "unknown"
)

const UntitledForm = "Untitled Form"

// Google's type codes. Only codes confirmed against live forms belong here;
// anything else is TypeUnknown.
var typeCodes = map[int]QuestionType{
	0:  TypeText,
	1:  TypeTextarea,
	2:  TypeRadio,
	3:  TypeDropdown,
	4:  TypeCheckbox,
	5:  TypeScale,
	7:  TypeGrid,
	9:  TypeDate,
	10: TypeTime,
}

// TypeFromCode maps a Google type code to a QuestionType.
func TypeFromCode(code int) QuestionType {
	if t, ok := typeCodes[code]; ok {
		return t
	}
	return TypeUnknown
}

// ParsedQuestion is one question decoded from the source form.
type ParsedQuestion struct {
	QuestionText string       `json:"question_text"`
	Type         QuestionType `json:"type"`
	Options      []string     `json:"options"`
	Required     bool         `json:"required"`
}

// ParsedFormData is the decoded content of one external form.
type ParsedFormData struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []ParsedQuestion `json:"questions"`
}

// ParseFormData reads title, description and questions out of payload.
// A missing question container yields zero questions, not an error.
func ParseFormData(payload *RawFormPayload) *ParsedFormData {
	form := &ParsedFormData{
		Title:     UntitledForm,
		Questions: []ParsedQuestion{},
	}

	if title, ok := payload.Title(); ok && title != "" {
		form.Title = title
	}
	if description, ok := payload.Description(); ok {
		form.Description = description
	}

	entries, _ := payload.Questions()
	for _, entry := range entries {
		form.Questions = append(form.Questions, parseQuestion(entry))
	}

	return form
}

func parseQuestion(entry RawQuestion) ParsedQuestion {
	question := ParsedQuestion{
		Type:     TypeUnknown,
		Options:  []string{},
		Required: entry.Required(),
	}
	if text, ok := entry.Text(); ok {
		question.QuestionText = text
	}
	if code, ok := entry.TypeCode(); ok {
		question.Type = TypeFromCode(code)
	}
	if options, ok := entry.Options(); ok {
		question.Options = options
	}
	return question
}
