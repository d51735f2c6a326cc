package quiz

import (
	"math"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// Result is the final score of a session with a per-question review.
type Result struct {
	QuizID       string       `json:"quiz_id"`
	Title        string       `json:"title"`
	CorrectCount int          `json:"correct_count"`
	Total        int          `json:"total"`
	Percentage   int          `json:"percentage"`
	Questions    []ReviewItem `json:"questions"`
}

// ReviewItem compares the user's answer with the canonical one.
type ReviewItem struct {
	Text          string         `json:"text"`
	UserResponse  model.Response `json:"user_response"`
	UserAnswer    []string       `json:"user_answer"`
	NoAnswer      bool           `json:"no_answer"`
	CorrectAnswer []string       `json:"correct_answer"`
	Correct       bool           `json:"correct"`
}

// Score grades every question of s in session order. It does not modify s.
func Score(s *Session) Result {
	res := Result{
		QuizID:    s.Quiz.ID,
		Title:     s.Quiz.Title,
		Total:     s.Total(),
		Questions: make([]ReviewItem, 0, s.Total()),
	}

	for i, q := range s.Quiz.Questions {
		user := s.Answers[i]
		ok := IsCorrect(q, user)
		if ok {
			res.CorrectCount++
		}

		item := ReviewItem{
			Text:          q.Text,
			UserResponse:  user,
			CorrectAnswer: optionTexts(q, q.CorrectResponse()),
			Correct:       ok,
		}
		if IsAnswered(user) {
			item.UserAnswer = optionTexts(q, user)
		} else {
			item.NoAnswer = true
		}
		res.Questions = append(res.Questions, item)
	}

	if res.Total > 0 {
		res.Percentage = int(math.Round(float64(res.CorrectCount) / float64(res.Total) * 100))
	}
	return res
}

// optionTexts resolves the option labels named by r, skipping indexes that
// fall outside the options.
func optionTexts(q Question, r model.Response) []string {
	var idx []int
	if r.IsMulti() {
		idx = r.Indexes()
	} else if i, ok := r.Single(); ok {
		idx = []int{i}
	}

	out := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(q.Options) {
			out = append(out, q.Options[i])
		}
	}
	return out
}
