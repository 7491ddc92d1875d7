package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/chatask-service/internal/formimport"
	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps service and import pipeline errors to responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "validation_failed", "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Rule, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	var noQuestions *formimport.NoSupportedQuestionsError
	if errors.As(err, &noQuestions) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "no_supported_questions",
			"The form has no single or multiple choice questions", err,
			map[string]interface{}{"warnings": noQuestions.Warnings})
		return
	}

	var fetchErr *formimport.FetchError
	if errors.As(err, &fetchErr) {
		details := map[string]interface{}{"url": fetchErr.URL}
		if fetchErr.StatusCode != 0 {
			details["status_code"] = fetchErr.StatusCode
		}
		h.RespondWithError(c, http.StatusBadGateway, "fetch_failure", "Failed to retrieve the form page", err, details)
		return
	}

	switch {
	case errors.Is(err, formimport.ErrInvalidURL):
		h.RespondWithError(c, http.StatusBadRequest, "invalid_url", "Not a recognizable Google Forms URL", err)
	case errors.Is(err, formimport.ErrPayloadNotFound):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "payload_not_found",
			"The page does not contain form data. The form may be private or require sign-in", err)
	case errors.Is(err, formimport.ErrPayloadMalformed):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "payload_malformed", "The form data could not be read", err)
	case errors.Is(err, services.ErrSurveyNotFound):
		h.RespondWithError(c, http.StatusNotFound, "survey_not_found", "Survey not found", err)
	case errors.Is(err, services.ErrResponseNotFound):
		h.RespondWithError(c, http.StatusNotFound, "response_not_found", "Response not found", err)
	case errors.Is(err, services.ErrExportEmpty):
		h.RespondWithError(c, http.StatusNotFound, "export_empty", "There are no responses to export", err)
	case errors.Is(err, services.ErrUnsupportedFormat):
		h.RespondWithError(c, http.StatusBadRequest, "unsupported_format", "Unsupported export format", err)
	case errors.Is(err, services.ErrInvalidDocument):
		h.RespondWithError(c, http.StatusBadRequest, "invalid_document", "Invalid JSON format", err)
	case errors.Is(err, services.ErrAIUnavailable):
		h.RespondWithError(c, http.StatusServiceUnavailable, "ai_unavailable", "AI interviewer is not available", err)
	case errors.Is(err, services.ErrInterviewFailed):
		h.RespondWithError(c, http.StatusBadGateway, "ai_failure", "Failed to process AI conversation", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "internal_error", "Internal server error", err)
	}
}

func (h *BaseHandler) respondInvalidPayload(c *gin.Context, err error) {
	h.RespondWithError(c, http.StatusBadRequest, "invalid_payload", "Invalid request payload", err, err.Error())
}
