package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	BaseHandler
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService, logger utils.Logger) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:      NewBaseHandler(logger),
		interviewService: interviewService,
	}
}

// Analyze picks the interview theme and first question
// @Router /interview/analyze [post]
func (h *InterviewHandler) Analyze(c *gin.Context) {
	var req services.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	analysis, err := h.interviewService.Analyze(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// NextQuestion continues the interview or closes it with a summary
// @Router /interview/next [post]
func (h *InterviewHandler) NextQuestion(c *gin.Context) {
	var req services.NextQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	turn, err := h.interviewService.NextQuestion(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, turn)
}
