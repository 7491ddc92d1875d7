package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
	validator     *validator.Validator
}

func NewExportHandler(exportService services.ExportService, validator *validator.Validator, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
		validator:     validator,
	}
}

type exportQuery struct {
	Format string `form:"format" json:"format" validate:"required,export_format"`
}

// ExportSurvey downloads a survey's responses as json, csv or xlsx
// @Router /surveys/{id}/export [get]
func (h *ExportHandler) ExportSurvey(c *gin.Context) {
	surveyID := ParseStringIDParam(c, "id")
	if surveyID == "" {
		return
	}

	query := exportQuery{Format: c.DefaultQuery("format", string(services.ExportJSON))}
	if err := h.validator.ValidateStruct(query); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Exporting survey", "survey_id", surveyID, "format", query.Format)

	file, err := h.exportService.Export(c.Request.Context(), surveyID, services.ExportFormat(query.Format))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
