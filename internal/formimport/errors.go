package formimport

import (
	"errors"
	"fmt"
)

// ===== IMPORT PIPELINE ERRORS =====

var (
	ErrInvalidURL           = errors.New("no form identifier found in url")
	ErrFetchFailure         = errors.New("failed to fetch form")
	ErrPayloadNotFound      = errors.New("form payload not found in page")
	ErrPayloadMalformed     = errors.New("form payload is malformed")
	ErrNoSupportedQuestions = errors.New("no supported question types found")
)

// FetchError describes a failed retrieval of the form page.
// StatusCode is zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d", ErrFetchFailure, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", ErrFetchFailure, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}

// NoSupportedQuestionsError is returned when a form decoded cleanly but none of
// its questions could be converted. Warnings explain every skipped question.
type NoSupportedQuestionsError struct {
	Warnings []string
}

func (e *NoSupportedQuestionsError) Error() string {
	return fmt.Sprintf("%s (%d questions skipped)", ErrNoSupportedQuestions, len(e.Warnings))
}

func (e *NoSupportedQuestionsError) Is(target error) bool {
	return target == ErrNoSupportedQuestions
}

// IsSourceUnrecognized reports whether err means the page could not be understood,
// either because it is not a form or because the upstream layout changed.
func IsSourceUnrecognized(err error) bool {
	return errors.Is(err, ErrPayloadNotFound) || errors.Is(err, ErrPayloadMalformed)
}
