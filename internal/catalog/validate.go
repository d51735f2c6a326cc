package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/validator"
)

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

// Validate checks required fields, id uniqueness and that every answer
// index points at an existing option.
func Validate(quizzes []model.QuizDefinition) error {
	var problems []string

	if fields := validator.Struct(model.Catalog{Quizzes: quizzes}); fields != nil {
		for field, msg := range fields {
			problems = append(problems, field+": "+msg)
		}
		sort.Strings(problems)
	}

	seen := make(map[string]bool, len(quizzes))
	for _, quiz := range quizzes {
		if quiz.ID != "" && seen[quiz.ID] {
			problems = append(problems, fmt.Sprintf("quiz %q: duplicate id", quiz.ID))
		}
		seen[quiz.ID] = true

		for i, q := range quiz.Questions {
			for _, p := range questionProblems(q) {
				problems = append(problems, fmt.Sprintf("quiz %q question %d: %s", quiz.ID, i+1, p))
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func questionProblems(q model.QuestionDefinition) []string {
	var problems []string

	switch q.Kind() {
	case model.KindTrueFalse:
		// Options other than exactly two are replaced by True/False.
		if q.AnswerIndex != nil && (*q.AnswerIndex < 0 || *q.AnswerIndex > 1) {
			problems = append(problems, fmt.Sprintf("answerIndex %d out of range", *q.AnswerIndex))
		}

	case model.KindMultiple:
		if len(q.Options) < 2 {
			problems = append(problems, "needs at least 2 options")
		}
		if len(q.AnswerIndexes) == 0 {
			problems = append(problems, "answerIndexes is empty")
		}
		for _, a := range q.AnswerIndexes {
			if a < 0 || a >= len(q.Options) {
				problems = append(problems, fmt.Sprintf("answerIndexes entry %d out of range", a))
			}
		}

	case model.KindSingle:
		if len(q.Options) < 2 {
			problems = append(problems, "needs at least 2 options")
		}
		if q.AnswerIndex != nil && (*q.AnswerIndex < 0 || *q.AnswerIndex >= len(q.Options)) {
			problems = append(problems, fmt.Sprintf("answerIndex %d out of range", *q.AnswerIndex))
		}
	}
	return problems
}
