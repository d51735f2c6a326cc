package model

import "strings"

// QuestionKind enumerates the supported question types.
type QuestionKind string

const (
	KindSingle    QuestionKind = "multiple-choice-single"
	KindMultiple  QuestionKind = "multiple-choice-multiple"
	KindTrueFalse QuestionKind = "true-false"
)

// ParseKind resolves a raw type tag to a QuestionKind. Missing or unknown
// tags resolve to KindSingle; fallback reports when that happened for a
// non-empty tag.
func ParseKind(raw string) (kind QuestionKind, fallback bool) {
	switch QuestionKind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindSingle:
		return KindSingle, false
	case KindMultiple:
		return KindMultiple, false
	case KindTrueFalse:
		return KindTrueFalse, false
	case "":
		return KindSingle, false
	default:
		return KindSingle, true
	}
}

// Catalog is the document loaded at startup.
type Catalog struct {
	Quizzes []QuizDefinition `json:"quizzes" validate:"dive"`
}

// QuizDefinition is an immutable quiz as authored in the catalog.
type QuizDefinition struct {
	ID          string               `json:"id" validate:"required,max=200"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Questions   []QuestionDefinition `json:"questions" validate:"required,min=1,dive"`
}

// QuestionDefinition is a question as authored. Which answer field is
// meaningful depends on Type.
type QuestionDefinition struct {
	Type          string   `json:"type,omitempty"`
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options"`
	AnswerIndex   *int     `json:"answerIndex,omitempty"`
	AnswerIndexes []int    `json:"answerIndexes,omitempty"`
	Answer        *bool    `json:"answer,omitempty"`
}

// Kind returns the parsed question kind.
func (q QuestionDefinition) Kind() QuestionKind {
	k, _ := ParseKind(q.Type)
	return k
}

// QuizSummary is the landing-page view of a quiz.
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}

// Summary builds the landing-page view of q.
func (q QuizDefinition) Summary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		QuestionCount: len(q.Questions),
	}
}
