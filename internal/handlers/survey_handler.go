package handlers

import (
	"io"
	"net/http"

	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const maxDocumentBytes = 20 << 20

type SurveyHandler struct {
	BaseHandler
	surveyService services.SurveyService
}

func NewSurveyHandler(surveyService services.SurveyService, logger utils.Logger) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler:   NewBaseHandler(logger),
		surveyService: surveyService,
	}
}

// CreateSurvey creates a survey from a title and choice questions
// @Router /surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req services.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	h.LogRequest(c, "Creating survey", "title", req.Title, "questions", len(req.Questions))

	survey, err := h.surveyService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, survey)
}

// GetSurvey returns a survey with its questions
// @Router /surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	survey, err := h.surveyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

// ListSurveys supports active, search, limit, offset, sort_by and sort_order
// @Router /surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	limit, offset := parsePagination(c)
	filters := repositories.SurveyFilters{
		Active:    parseBoolQuery(c, "active"),
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	surveys, err := h.surveyService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, surveys)
}

// UpdateSurvey replaces a survey's fields and questions
// @Router /surveys/{id} [put]
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	h.LogRequest(c, "Updating survey", "survey_id", id)

	survey, err := h.surveyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

// DeleteSurvey removes a survey and its responses
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting survey", "survey_id", id)

	if err := h.surveyService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ImportSurveyJSON restores a survey from a JSON export
// @Router /surveys/import-json [post]
func (h *SurveyHandler) ImportSurveyJSON(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes))
	if err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	h.LogRequest(c, "Importing survey document", "bytes", len(data))

	result, err := h.surveyService.ImportFromJSON(c.Request.Context(), data)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replaced {
		status = http.StatusOK
	}
	c.JSON(status, result)
}
