package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type ExportFormat string

const (
	ExportJSON  ExportFormat = "json"
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "xlsx"
)

const (
	responsesSheet = "Responses"
	timeLayout     = time.RFC3339
	listSeparator  = ", "
)

// ExportService renders a survey and its responses as downloadable files
type ExportService interface {
	Export(ctx context.Context, surveyID string, format ExportFormat) (*ExportFile, error)
	ExportJSON(ctx context.Context, surveyID string) ([]byte, error)
	ExportCSV(ctx context.Context, surveyID string) ([]byte, error)
	ExportExcel(ctx context.Context, surveyID string) ([]byte, error)
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type exportService struct {
	repo    repositories.Repository
	surveys SurveyService
	logger  *ServiceLogger
	now     func() time.Time
}

func NewExportService(repo repositories.Repository, surveys SurveyService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:    repo,
		surveys: surveys,
		logger:  NewServiceLogger(logger, "export"),
		now:     time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, surveyID string, format ExportFormat) (file *ExportFile, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "export_"+string(format), "survey", surveyID, time.Since(start), err)
	}()

	var (
		data        []byte
		contentType string
	)
	switch format {
	case ExportJSON:
		data, err = s.ExportJSON(ctx, surveyID)
		contentType = "application/json"
	case ExportCSV:
		data, err = s.ExportCSV(ctx, surveyID)
		contentType = "text/csv; charset=utf-8"
	case ExportExcel:
		data, err = s.ExportExcel(ctx, surveyID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("survey-%s-%s.%s", surveyID, s.now().Format("20060102"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ExportJSON writes the survey with every response. A survey without
// responses still exports so that it can be restored later.
func (s *exportService) ExportJSON(ctx context.Context, surveyID string) ([]byte, error) {
	survey, responses, err := s.load(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(SurveyDocument{
		Survey:     survey,
		Responses:  responses,
		ExportedAt: s.now().UTC(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode survey document: %w", err)
	}
	return data, nil
}

func (s *exportService) ExportCSV(ctx context.Context, surveyID string) ([]byte, error) {
	survey, responses, err := s.loadNonEmpty(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(responseHeaders(survey)); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, response := range responses {
		if err := writer.Write(responseRow(survey, response)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *exportService) ExportExcel(ctx context.Context, surveyID string) ([]byte, error) {
	survey, responses, err := s.loadNonEmpty(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), responsesSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := writeSheetRow(f, 1, responseHeaders(survey)); err != nil {
		return nil, err
	}
	for i, response := range responses {
		if err := writeSheetRow(f, i+2, responseRow(survey, response)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) load(ctx context.Context, surveyID string) (*models.Survey, []*models.Response, error) {
	survey, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	responses, _, err := s.repo.Response().ListBySurvey(ctx, surveyID, repositories.ResponseFilters{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load responses: %w", err)
	}
	if responses == nil {
		responses = []*models.Response{}
	}
	return survey, responses, nil
}

func (s *exportService) loadNonEmpty(ctx context.Context, surveyID string) (*models.Survey, []*models.Response, error) {
	survey, responses, err := s.load(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if len(responses) == 0 {
		return nil, nil, ErrExportEmpty
	}
	return survey, responses, nil
}

// ===== TABLE LAYOUT =====

func responseHeaders(survey *models.Survey) []string {
	headers := make([]string, 0, len(survey.Questions)+5)
	headers = append(headers, "回答ID", "回答日時")
	for _, q := range survey.Questions {
		headers = append(headers, q.QuestionText)
	}
	return append(headers, "AIテーマ", "AI要約", "キーワード")
}

func responseRow(survey *models.Survey, response *models.Response) []string {
	row := make([]string, 0, len(survey.Questions)+5)
	row = append(row, response.ID, response.SubmittedAt.UTC().Format(timeLayout))
	for _, q := range survey.Questions {
		answer, _ := response.AnswerFor(q.ID)
		row = append(row, strings.Join(answer.Values, listSeparator))
	}
	return append(row,
		response.AITheme,
		response.AISummary,
		strings.Join(response.AIKeywords, listSeparator),
	)
}

func writeSheetRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(responsesSheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
