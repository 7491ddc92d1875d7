package handlers

import (
	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	surveyHandler    *SurveyHandler
	responseHandler  *ResponseHandler
	exportHandler    *ExportHandler
	importHandler    *ImportHandler
	interviewHandler *InterviewHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		surveyHandler:    NewSurveyHandler(serviceManager.Survey(), logger),
		responseHandler:  NewResponseHandler(serviceManager.Response(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), validator, logger),
		importHandler:    NewImportHandler(serviceManager.Import(), logger),
		interviewHandler: NewInterviewHandler(serviceManager.Interview(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/forms/import", hm.importHandler.ImportForm)

		surveys := v1.Group("/surveys")
		{
			surveys.POST("", hm.surveyHandler.CreateSurvey)
			surveys.GET("", hm.surveyHandler.ListSurveys)
			surveys.POST("/import-json", hm.surveyHandler.ImportSurveyJSON)
			surveys.GET("/:id", hm.surveyHandler.GetSurvey)
			surveys.PUT("/:id", hm.surveyHandler.UpdateSurvey)
			surveys.DELETE("/:id", hm.surveyHandler.DeleteSurvey)

			surveys.POST("/:id/responses", hm.responseHandler.SubmitResponse)
			surveys.GET("/:id/responses", hm.responseHandler.ListResponses)
			surveys.GET("/:id/export", hm.exportHandler.ExportSurvey)
		}

		v1.GET("/responses/:id", hm.responseHandler.GetResponse)

		interview := v1.Group("/interview")
		{
			interview.POST("/analyze", hm.interviewHandler.Analyze)
			interview.POST("/next", hm.interviewHandler.NextQuestion)
		}
	}
}
