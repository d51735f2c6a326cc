package quiz

import (
	"sort"
	"strings"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// Question is a normalized question in session order. AnswerIndex is
// meaningful for single-choice and true/false kinds, AnswerIndexes for
// multiple-choice-multiple.
type Question struct {
	Kind          model.QuestionKind `json:"kind"`
	Text          string             `json:"text"`
	Options       []string           `json:"options"`
	AnswerIndex   int                `json:"answer_index"`
	AnswerIndexes []int              `json:"answer_indexes,omitempty"`
}

// Quiz is the randomized copy of a QuizDefinition owned by a session.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

var defaultTrueFalseOptions = []string{"True", "False"}

// Normalize converts a question definition to its canonical form. The
// returned flag is set when the type tag was unrecognized and the question
// fell back to single choice.
func Normalize(def model.QuestionDefinition) (Question, bool) {
	kind, fallback := model.ParseKind(def.Type)

	switch kind {
	case model.KindTrueFalse:
		return normalizeTrueFalse(def), false

	case model.KindMultiple:
		return Question{
			Kind:          model.KindMultiple,
			Text:          def.Text,
			Options:       cloneStrings(def.Options),
			AnswerIndexes: uniqueSorted(def.AnswerIndexes),
		}, false

	case model.KindSingle:
		q := Question{
			Kind:    model.KindSingle,
			Text:    def.Text,
			Options: cloneStrings(def.Options),
		}
		if def.AnswerIndex != nil {
			q.AnswerIndex = *def.AnswerIndex
		}
		return q, fallback

	default:
		panic("quiz: unhandled question kind " + string(kind))
	}
}

func normalizeTrueFalse(def model.QuestionDefinition) Question {
	options := cloneStrings(defaultTrueFalseOptions)
	if len(def.Options) == 2 {
		options = cloneStrings(def.Options)
	}

	q := Question{Kind: model.KindTrueFalse, Text: def.Text, Options: options}
	switch {
	case def.AnswerIndex != nil:
		q.AnswerIndex = *def.AnswerIndex
	case def.Answer != nil && *def.Answer:
		q.AnswerIndex = findOption(options, "true", 0)
	case def.Answer != nil:
		q.AnswerIndex = findOption(options, "false", 1)
	}
	return q
}

// findOption locates label among options ignoring case and surrounding
// whitespace, returning fallback when absent.
func findOption(options []string, label string, fallback int) int {
	for i, o := range options {
		if strings.ToLower(strings.TrimSpace(o)) == label {
			return i
		}
	}
	return fallback
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func uniqueSorted(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
