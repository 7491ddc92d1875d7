package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
}

func NewResponseHandler(responseService services.ResponseService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
	}
}

// SubmitResponse stores one respondent's answers and interview
// @Router /surveys/{id}/responses [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	surveyID := ParseStringIDParam(c, "id")
	if surveyID == "" {
		return
	}

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	h.LogRequest(c, "Submitting response", "survey_id", surveyID, "answers", len(req.ChoiceAnswers))

	response, err := h.responseService.Submit(c.Request.Context(), surveyID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses supports limit, offset, from and to
// @Router /surveys/{id}/responses [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	surveyID := ParseStringIDParam(c, "id")
	if surveyID == "" {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.ResponseFilters{
		DateFrom: parseTimeQuery(c, "from"),
		DateTo:   parseTimeQuery(c, "to"),
		Limit:    limit,
		Offset:   offset,
	}

	responses, err := h.responseService.ListBySurvey(c.Request.Context(), surveyID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// GetResponse returns a single response
// @Router /responses/{id} [get]
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	response, err := h.responseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
