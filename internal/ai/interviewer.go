package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/chatask-service/internal/models"
)

const DefaultMaxTurns = 5

// Analysis is the interview theme chosen from the choice answers
type Analysis struct {
	Theme           string `json:"theme"`
	InitialQuestion string `json:"initial_question"`
}

// Turn is the outcome of advancing the interview by one step
type Turn struct {
	NextQuestion string   `json:"next_question,omitempty"`
	IsComplete   bool     `json:"is_complete"`
	Summary      string   `json:"summary,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	TurnNumber   int      `json:"turn"`
}

// Interviewer runs the follow-up interview on top of a TextGenerator
type Interviewer struct {
	generator TextGenerator
}

func NewInterviewer(generator TextGenerator) *Interviewer {
	return &Interviewer{generator: generator}
}

// Analyze picks a theme and the first question. Replies without usable JSON
// fall back to fixed defaults.
func (i *Interviewer) Analyze(ctx context.Context, questions []models.Question, answers []models.ChoiceAnswer) (*Analysis, error) {
	text, err := i.generator.Generate(ctx, AnalysisPrompt(questions, answers))
	if err != nil {
		return nil, fmt.Errorf("analyze answers: %w", err)
	}
	return parseAnalysis(text), nil
}

// CurrentTurn is the 1-based turn for a history of alternating messages
func CurrentTurn(history []models.ConversationMessage) int {
	return len(history)/2 + 1
}

// NextQuestion asks the next question, or closes the interview with a
// summary and keywords once the turn limit is reached.
func (i *Interviewer) NextQuestion(ctx context.Context, history []models.ConversationMessage, theme string, maxTurns int) (*Turn, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	turn := CurrentTurn(history)
	if turn >= maxTurns {
		summary, err := i.Summary(ctx, history)
		if err != nil {
			return nil, err
		}
		keywords, err := i.Keywords(ctx, history)
		if err != nil {
			return nil, err
		}
		return &Turn{IsComplete: true, Summary: summary, Keywords: keywords, TurnNumber: turn}, nil
	}

	question, err := i.generator.Generate(ctx, InterviewPrompt(history, theme, turn, maxTurns))
	if err != nil {
		return nil, fmt.Errorf("generate next question: %w", err)
	}
	return &Turn{NextQuestion: strings.TrimSpace(question), TurnNumber: turn}, nil
}

func (i *Interviewer) Summary(ctx context.Context, history []models.ConversationMessage) (string, error) {
	text, err := i.generator.Generate(ctx, SummaryPrompt(history))
	if err != nil {
		return "", fmt.Errorf("summarize interview: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (i *Interviewer) Keywords(ctx context.Context, history []models.ConversationMessage) ([]string, error) {
	text, err := i.generator.Generate(ctx, KeywordsPrompt(history))
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}
	return SplitKeywords(text), nil
}

// SplitKeywords splits on ASCII and Japanese commas and drops blanks
func SplitKeywords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '、' || r == '，'
	})

	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

func parseAnalysis(text string) *Analysis {
	fallback := &Analysis{Theme: FallbackTheme, InitialQuestion: FallbackInitialQuestion}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fallback
	}

	var reply struct {
		Theme           string `json:"theme"`
		InitialQuestion string `json:"initialQuestion"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &reply); err != nil {
		return fallback
	}

	analysis := &Analysis{
		Theme:           strings.TrimSpace(reply.Theme),
		InitialQuestion: strings.TrimSpace(reply.InitialQuestion),
	}
	if analysis.Theme == "" {
		analysis.Theme = FallbackTheme
	}
	if analysis.InitialQuestion == "" {
		analysis.InitialQuestion = FallbackInitialQuestion
	}
	return analysis
}
