package formimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/models"
)

// PageFetcher retrieves the markup of a form page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ImportResult is a successfully imported form. The survey is not persisted.
type ImportResult struct {
	FormID   string         `json:"form_id"`
	Survey   *models.Survey `json:"survey"`
	Warnings []string       `json:"warnings"`
	// Parsed is kept for diagnostics and is not serialized.
	Parsed *ParsedFormData `json:"-"`
}

// Importer runs the locate, extract and normalize stages for one URL.
// It holds no per-call state and is safe for concurrent use.
type Importer struct {
	fetcher PageFetcher
	labels  Labels
	logger  *slog.Logger
}

func NewImporter(fetcher PageFetcher, labels Labels, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		fetcher: fetcher,
		labels:  labels,
		logger:  logger.With("component", "form_importer"),
	}
}

// Import fetches and converts the form at rawURL. It fails with
// *NoSupportedQuestionsError when nothing could be converted.
func (i *Importer) Import(ctx context.Context, rawURL string) (*ImportResult, error) {
	start := time.Now()

	formID, fetchURL, err := Locate(rawURL)
	if err != nil {
		i.logger.WarnContext(ctx, "Rejected form url", "url", rawURL)
		return nil, err
	}

	html, err := i.fetcher.Fetch(ctx, fetchURL)
	if err != nil {
		i.logger.WarnContext(ctx, "Failed to fetch form", "form_id", formID, "url", fetchURL, "error", err)
		return nil, err
	}

	payload, err := ExtractPayload(html)
	if err != nil {
		i.logger.WarnContext(ctx, "Failed to extract form payload", "form_id", formID, "error", err)
		return nil, err
	}

	parsed := ParseFormData(payload)
	conversion := ConvertToSurvey(parsed, i.labels)

	i.logger.InfoContext(ctx, "Form parsed",
		"form_id", formID,
		"parsed_questions", len(parsed.Questions),
		"accepted_questions", len(conversion.Survey.Questions),
		"warnings", len(conversion.Warnings),
		"duration", time.Since(start))

	if len(conversion.Survey.Questions) == 0 {
		return nil, &NoSupportedQuestionsError{Warnings: conversion.Warnings}
	}

	return &ImportResult{
		FormID:   formID,
		Survey:   conversion.Survey,
		Warnings: conversion.Warnings,
		Parsed:   parsed,
	}, nil
}
