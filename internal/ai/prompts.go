package ai

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/chatask-service/internal/models"
)

const (
	FallbackTheme           = "回答内容についての詳細"
	FallbackInitialQuestion = "先ほどの回答について、もう少し詳しく教えていただけますか？"

	unansweredLabel = "未回答"
)

const analysisPromptTemplate = `
あなたはアンケート分析の専門家です。
以下のアンケート回答を分析し、深掘りインタビューのテーマを決定してください。

【質問と回答】
%s

【タスク】
1. 回答パターンから重要な傾向や特徴を分析してください
2. 最も深掘りすべきテーマを1つ決定してください
3. そのテーマに関する最初の質問を生成してください

【ルール】
- テーマは1文で簡潔に
- 初期質問は具体的で答えやすいものにする
- 回答者の立場に立った質問をする

【出力形式】
必ず以下のJSON形式で出力してください:
{
  "theme": "深掘りテーマ（1文）",
  "initialQuestion": "最初の質問"
}
`

const interviewPromptTemplate = `
あなたはインタビュアーです。
以下のテーマに沿って、ユーザーから有益な情報を引き出してください。

【インタビューテーマ】
%s

【これまでの対話】
%s

【ルール】
1. 1回の質問は簡潔に（1-2文）
2. ユーザーの回答に基づいて深掘りする
3. 具体例や詳細を引き出す
4. 最大%dターンで完結させる（現在%d/%dターン目）
5. 誘導尋問は避ける

次の質問を1つだけ生成してください。質問文のみを返してください。
`

const summaryPromptTemplate = `
以下の対話内容を簡潔に要約してください。
ユーザーが述べた主要なポイントを3-5文でまとめてください。

【対話内容】
%s

要約:
`

const keywordsPromptTemplate = `
以下の対話内容から重要なキーワードを5-10個抽出してください。
キーワードはカンマ区切りで返してください。

【対話内容】
%s

キーワード（カンマ区切り）:
`

func AnalysisPrompt(questions []models.Question, answers []models.ChoiceAnswer) string {
	blocks := make([]string, 0, len(questions))
	for i, q := range questions {
		answerText := unansweredLabel
		for _, a := range answers {
			if a.QuestionID == q.ID && len(a.Values) > 0 {
				answerText = strings.Join(a.Values, ", ")
				break
			}
		}
		blocks = append(blocks, fmt.Sprintf("Q%d. %s\n回答: %s", i+1, q.QuestionText, answerText))
	}
	return fmt.Sprintf(analysisPromptTemplate, strings.Join(blocks, "\n\n"))
}

func InterviewPrompt(history []models.ConversationMessage, theme string, turn, maxTurns int) string {
	return fmt.Sprintf(interviewPromptTemplate, theme, transcript(history, "あなた"), maxTurns, turn, maxTurns)
}

func SummaryPrompt(history []models.ConversationMessage) string {
	return fmt.Sprintf(summaryPromptTemplate, transcript(history, "AI"))
}

func KeywordsPrompt(history []models.ConversationMessage) string {
	return fmt.Sprintf(keywordsPromptTemplate, transcript(history, "AI"))
}

// transcript renders the conversation one line per message
func transcript(history []models.ConversationMessage, aiLabel string) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := "ユーザー"
		if msg.Role == models.RoleAI {
			speaker = aiLabel
		}
		lines = append(lines, speaker+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
