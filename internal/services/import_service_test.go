package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/chatask-service/internal/events"
	"github.com/SAP-F-2025/chatask-service/internal/formimport"
	"github.com/SAP-F-2025/chatask-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubImporter struct {
	result *formimport.ImportResult
	err    error
	urls   []string
}

func (s *stubImporter) Import(_ context.Context, rawURL string) (*formimport.ImportResult, error) {
	s.urls = append(s.urls, rawURL)
	return s.result, s.err
}

func importedForm() *formimport.ImportResult {
	survey := sampleSurvey()
	survey.ID = "draft-1"
	return &formimport.ImportResult{
		FormID:   "1FAIpQLSe",
		Survey:   survey,
		Warnings: []string{`Question 3 "Comments" (long text) is not supported and was skipped.`},
	}
}

func TestImportService_ImportForm(t *testing.T) {
	const url = "https://docs.google.com/forms/d/e/1FAIpQLSe/viewform"

	t.Run("draft only", func(t *testing.T) {
		f := newServiceFixture()
		importer := &stubImporter{result: importedForm()}
		svc := NewImportService(importer, f.surveys, f.publisher, f.validator, testLogger())

		resp, err := svc.ImportForm(context.Background(), &FormImportRequest{URL: url})

		require.NoError(t, err)
		assert.False(t, resp.Saved)
		assert.Equal(t, "1FAIpQLSe", resp.FormID)
		assert.Len(t, resp.Warnings, 1)
		assert.Equal(t, []string{url}, importer.urls)
		f.repo.surveyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		published := f.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		data := published[0].Data.(events.SurveyImportedEvent)
		assert.Empty(t, data.SurveyID)
		assert.Equal(t, 1, data.WarningCount)
	})

	t.Run("saved", func(t *testing.T) {
		f := newServiceFixture()
		f.repo.surveyRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Survey) bool {
			return s.ID == "draft-1"
		})).Return(nil)
		svc := NewImportService(&stubImporter{result: importedForm()}, f.surveys, f.publisher, f.validator, testLogger())

		resp, err := svc.ImportForm(context.Background(), &FormImportRequest{URL: url, Save: true})

		require.NoError(t, err)
		assert.True(t, resp.Saved)

		var imported *events.SurveyEvent
		for _, e := range f.publisher.GetPublishedEvents() {
			if e.Type == events.EventSurveyImported {
				e := e
				imported = &e
			}
		}
		require.NotNil(t, imported)
		assert.Equal(t, "draft-1", imported.Data.(events.SurveyImportedEvent).SurveyID)
	})

	t.Run("pipeline errors pass through", func(t *testing.T) {
		f := newServiceFixture()
		failure := &formimport.NoSupportedQuestionsError{Warnings: []string{"skipped"}}
		svc := NewImportService(&stubImporter{err: failure}, f.surveys, f.publisher, f.validator, testLogger())

		_, err := svc.ImportForm(context.Background(), &FormImportRequest{URL: url})

		assert.ErrorIs(t, err, formimport.ErrNoSupportedQuestions)
		assert.Empty(t, f.publisher.GetPublishedEvents())
	})

	t.Run("url is required", func(t *testing.T) {
		f := newServiceFixture()
		importer := &stubImporter{}
		svc := NewImportService(importer, f.surveys, f.publisher, f.validator, testLogger())

		_, err := svc.ImportForm(context.Background(), &FormImportRequest{})

		assert.True(t, IsValidation(err))
		assert.Empty(t, importer.urls)
	})
}
