package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/SAP-F-2025/chatask-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportResponses() []*models.Response {
	submitted := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return []*models.Response{
		{
			ID:          "r1",
			SurveyID:    "survey-1",
			SubmittedAt: submitted,
			ChoiceAnswers: []models.ChoiceAnswer{
				{QuestionID: "q1", Values: []string{"Rice"}},
				{QuestionID: "q2", Values: []string{"Tea", "Coffee"}},
			},
			AITheme:    "Habits",
			AISummary:  `Said "rice, always"`,
			AIKeywords: []string{"rice", "tea"},
		},
		{
			ID:          "r2",
			SurveyID:    "survey-1",
			SubmittedAt: submitted.Add(time.Hour),
			ChoiceAnswers: []models.ChoiceAnswer{
				{QuestionID: "q1", Values: []string{"Bread"}},
			},
		},
	}
}

func newExportFixture(responses []*models.Response) (*serviceFixture, ExportService) {
	f := newServiceFixture()
	f.repo.surveyRepo.On("GetByID", mock.Anything, "survey-1").Return(sampleSurvey(), nil)
	f.repo.surveyRepo.On("GetByID", mock.Anything, "missing").Return(nil, repositories.ErrNotFound)
	f.repo.responseRepo.On("ListBySurvey", mock.Anything, "survey-1", repositories.ResponseFilters{}).
		Return(responses, int64(len(responses)), nil)

	svc := NewExportService(f.repo, f.surveys, testLogger())
	svc.(*exportService).now = func() time.Time { return time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC) }
	return f, svc
}

func TestExportService_ExportCSV(t *testing.T) {
	_, svc := newExportFixture(exportResponses())

	data, err := svc.ExportCSV(context.Background(), "survey-1")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"回答ID", "回答日時", "Main dish", "Drinks", "AIテーマ", "AI要約", "キーワード"}, records[0])
	assert.Equal(t, []string{"r1", "2025-03-01T09:30:00Z", "Rice", "Tea, Coffee", "Habits", `Said "rice, always"`, "rice, tea"}, records[1])
	assert.Equal(t, []string{"r2", "2025-03-01T10:30:00Z", "Bread", "", "", "", ""}, records[2])
}

func TestExportService_ExportExcel(t *testing.T) {
	_, svc := newExportFixture(exportResponses())

	data, err := svc.ExportExcel(context.Background(), "survey-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Main dish", rows[0][2])
	assert.Equal(t, "Tea, Coffee", rows[1][3])
	assert.Equal(t, "r2", rows[2][0])
}

func TestExportService_ExportJSON(t *testing.T) {
	_, svc := newExportFixture(exportResponses())

	data, err := svc.ExportJSON(context.Background(), "survey-1")
	require.NoError(t, err)

	var doc SurveyDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "survey-1", doc.Survey.ID)
	assert.Len(t, doc.Responses, 2)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), doc.ExportedAt)
	assert.Contains(t, string(data), "\n  \"survey\"")
}

func TestExportService_Empty(t *testing.T) {
	_, svc := newExportFixture([]*models.Response{})

	_, err := svc.ExportCSV(context.Background(), "survey-1")
	assert.ErrorIs(t, err, ErrExportEmpty)

	_, err = svc.ExportExcel(context.Background(), "survey-1")
	assert.ErrorIs(t, err, ErrExportEmpty)

	data, err := svc.ExportJSON(context.Background(), "survey-1")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"responses": []`)

	_, err = svc.ExportCSV(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestExportService_Export(t *testing.T) {
	_, svc := newExportFixture(exportResponses())

	file, err := svc.Export(context.Background(), "survey-1", ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "survey-survey-1-20250302.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	_, err = svc.Export(context.Background(), "survey-1", "pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
