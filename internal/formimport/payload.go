package formimport

import (
	"encoding/json"
)

// Known offsets inside FB_PUBLIC_LOAD_DATA_[1]. Google does not document this
// layout; every assumption about it lives in this file.
const (
	offsetDescription = 0
	offsetQuestions   = 1
	offsetTitle       = 8

	offsetQuestionText = 1
	offsetQuestionType = 3
	offsetQuestionBody = 4

	offsetBodyOptions  = 1
	offsetBodyRequired = 2
	offsetOptionText   = 0
)

// RawFormPayload is the decoded form-data array. It is opaque; read it only
// through the accessor methods.
type RawFormPayload struct {
	data []any
}

// NewRawFormPayload wraps an already decoded form-data array.
func NewRawFormPayload(data []any) *RawFormPayload {
	return &RawFormPayload{data: data}
}

// Title returns the form title at [8].
func (p *RawFormPayload) Title() (string, bool) {
	return stringAt(p.data, offsetTitle)
}

// Description returns the form description at [0].
func (p *RawFormPayload) Description() (string, bool) {
	return stringAt(p.data, offsetDescription)
}

// Questions returns the well-formed question entries. ok is false when the
// question container is missing. Entries that are not non-empty arrays are dropped.
func (p *RawFormPayload) Questions() (questions []RawQuestion, ok bool) {
	container, ok := sliceAt(p.data, offsetQuestions)
	if !ok {
		return nil, false
	}
	for _, entry := range container {
		fields, isSlice := entry.([]any)
		if !isSlice || len(fields) == 0 {
			continue
		}
		questions = append(questions, RawQuestion{fields: fields})
	}
	return questions, true
}

// RawQuestion is one entry of the question container.
type RawQuestion struct {
	fields []any
}

// Text returns the question text at [1].
func (q RawQuestion) Text() (string, bool) {
	return stringAt(q.fields, offsetQuestionText)
}

// TypeCode returns the integer type code at [3].
func (q RawQuestion) TypeCode() (int, bool) {
	return intAt(q.fields, offsetQuestionType)
}

// Required is true only when [4][0][2] holds the integer 1.
func (q RawQuestion) Required() bool {
	flag, ok := intAt(q.fields, offsetQuestionBody, 0, offsetBodyRequired)
	return ok && flag == 1
}

// Options returns the non-empty option labels found at [4][0][1][*][0].
func (q RawQuestion) Options() ([]string, bool) {
	entries, ok := sliceAt(q.fields, offsetQuestionBody, 0, offsetBodyOptions)
	if !ok {
		return nil, false
	}
	options := make([]string, 0, len(entries))
	for _, entry := range entries {
		label, ok := stringAt(entry, offsetOptionText)
		if !ok || label == "" {
			continue
		}
		options = append(options, label)
	}
	return options, true
}

// ===== POSITIONAL HELPERS =====

func elementAt(value any, path ...int) (any, bool) {
	current := value
	for _, index := range path {
		items, ok := current.([]any)
		if !ok || index < 0 || index >= len(items) {
			return nil, false
		}
		current = items[index]
	}
	return current, current != nil
}

func stringAt(value any, path ...int) (string, bool) {
	element, ok := elementAt(value, path...)
	if !ok {
		return "", false
	}
	switch v := element.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

func intAt(value any, path ...int) (int, bool) {
	element, ok := elementAt(value, path...)
	if !ok {
		return 0, false
	}
	switch v := element.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func sliceAt(value any, path ...int) ([]any, bool) {
	element, ok := elementAt(value, path...)
	if !ok {
		return nil, false
	}
	items, ok := element.([]any)
	return items, ok
}
