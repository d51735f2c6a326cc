package quiz

import (
	"github.com/rs/zerolog"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// scriptedSource replays fixed draws. Once exhausted it returns n-1, which
// leaves Fisher–Yates swaps as no-ops.
type scriptedSource struct {
	vals []int
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.vals) == 0 {
		return n - 1
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	if v < 0 || v >= n {
		panic("scriptedSource: draw out of range")
	}
	return v
}

func newTestEngine(draws ...int) *Engine {
	return NewEngine(zerolog.Nop(), WithSource(&scriptedSource{vals: draws}))
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

// threeQuestionQuiz has one question of each kind. With an identity source
// the session keeps this order.
func threeQuestionQuiz() model.QuizDefinition {
	return model.QuizDefinition{
		ID:    "basics",
		Title: "Basics",
		Questions: []model.QuestionDefinition{
			{Text: "2 + 2?", Options: []string{"3", "4", "5"}, AnswerIndex: intPtr(1)},
			{Type: "multiple-choice-multiple", Text: "Primes?", Options: []string{"2", "4", "5", "9"}, AnswerIndexes: []int{0, 2}},
			{Type: "true-false", Text: "Water is wet.", Answer: boolPtr(true)},
		},
	}
}
