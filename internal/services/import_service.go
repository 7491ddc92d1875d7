package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/events"
	"github.com/SAP-F-2025/chatask-service/internal/formimport"
	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
)

// FormImporter converts a public form URL into a draft survey
type FormImporter interface {
	Import(ctx context.Context, rawURL string) (*formimport.ImportResult, error)
}

type ImportService interface {
	ImportForm(ctx context.Context, req *FormImportRequest) (*FormImportResponse, error)
}

type FormImportRequest struct {
	URL  string `json:"url" validate:"required,max=2048"`
	Save bool   `json:"save"` // persist the converted survey
}

type FormImportResponse struct {
	FormID   string         `json:"form_id"`
	Survey   *models.Survey `json:"survey"`
	Warnings []string       `json:"warnings"`
	Saved    bool           `json:"saved"`
}

type importService struct {
	importer  FormImporter
	surveys   SurveyService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewImportService(
	importer FormImporter,
	surveys SurveyService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) ImportService {
	return &importService{
		importer:  importer,
		surveys:   surveys,
		publisher: publisher,
		validator: validator,
		logger:    NewServiceLogger(logger, "form_import"),
	}
}

// ImportForm returns formimport errors unchanged so that callers can tell
// an invalid URL from an unreachable or unrecognized page.
func (s *importService) ImportForm(ctx context.Context, req *FormImportRequest) (resp *FormImportResponse, err error) {
	start := time.Now()
	defer func() {
		id := ""
		if resp != nil {
			id = resp.FormID
		}
		s.logger.LogOperation(ctx, "import_form", "form", id, time.Since(start), err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	result, err := s.importer.Import(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	resp = &FormImportResponse{
		FormID:   result.FormID,
		Survey:   result.Survey,
		Warnings: result.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	if req.Save {
		saved, err := s.surveys.Save(ctx, result.Survey)
		if err != nil {
			return nil, err
		}
		resp.Survey = saved
		resp.Saved = true
	}

	savedID := ""
	if resp.Saved {
		savedID = resp.Survey.ID
	}
	event := events.NewSurveyImportedEvent(savedID, result.FormID, result.Survey.Title, len(result.Survey.Questions), len(result.Warnings))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}

	return resp, nil
}
