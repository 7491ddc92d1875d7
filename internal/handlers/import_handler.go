package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	BaseHandler
	importService services.ImportService
}

func NewImportHandler(importService services.ImportService, logger utils.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   NewBaseHandler(logger),
		importService: importService,
	}
}

// ImportForm converts a public Google Form into a survey. The survey is only
// stored when the request sets save.
// @Router /forms/import [post]
func (h *ImportHandler) ImportForm(c *gin.Context) {
	var req services.FormImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	h.LogRequest(c, "Importing form", "url", req.URL, "save", req.Save)

	resp, err := h.importService.ImportForm(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Saved {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}
