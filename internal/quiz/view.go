package quiz

import "github.com/Mooujj/quiz-hub/internal/model"

// OptionState is the highlight of an option after its question is checked.
type OptionState string

const (
	OptionPlain     OptionState = ""
	OptionCorrect   OptionState = "correct"
	OptionIncorrect OptionState = "incorrect"
	OptionSolution  OptionState = "solution"
)

// View is everything a client needs to draw the current screen.
type View struct {
	QuizID   string        `json:"quiz_id"`
	Title    string        `json:"title"`
	Status   Status        `json:"status"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Progress float64       `json:"progress"`
	Question *QuestionView `json:"question,omitempty"`
	Controls Controls      `json:"controls"`
	Result   *Result       `json:"result,omitempty"`
}

// QuestionView is the current question as displayed.
type QuestionView struct {
	Text    string             `json:"text"`
	Kind    model.QuestionKind `json:"kind"`
	Hint    string             `json:"hint"`
	State   QuestionState      `json:"state"`
	Locked  bool               `json:"locked"`
	Options []OptionView       `json:"options"`
}

// OptionView is one option in session order.
type OptionView struct {
	Index    int         `json:"index"`
	Text     string      `json:"text"`
	Selected bool        `json:"selected"`
	State    OptionState `json:"state,omitempty"`
}

// Controls lists which actions are currently available.
type Controls struct {
	Previous      bool `json:"previous"`
	Next          bool `json:"next"`
	Finish        bool `json:"finish"`
	Check         bool `json:"check"`
	ShowSolution  bool `json:"show_solution"`
	RetryQuestion bool `json:"retry_question"`
	RetryQuiz     bool `json:"retry_quiz"`
}

// Render derives the view of s. It has no side effects.
func Render(s *Session) View {
	v := View{
		QuizID: s.Quiz.ID,
		Title:  s.Quiz.Title,
		Status: s.Status,
		Index:  s.Index,
		Total:  s.Total(),
	}
	if v.Total > 0 {
		v.Progress = float64(s.Index) / float64(v.Total)
	}

	if s.Status == StatusCompleted {
		res := Score(s)
		v.Result = &res
		v.Progress = 1
		v.Controls = Controls{RetryQuiz: true}
		return v
	}

	q := s.Current()
	state := s.State(s.Index)
	checked := s.Checked[s.Index]
	wrong := state == StateIncorrect || state == StateSolved

	v.Question = &QuestionView{
		Text:    q.Text,
		Kind:    q.Kind,
		Hint:    hint(q.Kind),
		State:   state,
		Locked:  checked,
		Options: renderOptions(q, s.Answers[s.Index], checked, s.ShowSolution[s.Index]),
	}
	v.Controls = Controls{
		Previous:      s.Index > 0,
		Next:          !s.OnLast(),
		Finish:        s.OnLast() && s.AllAnswered(),
		Check:         !checked,
		ShowSolution:  wrong,
		RetryQuestion: wrong,
	}
	return v
}

func renderOptions(q Question, stored model.Response, checked, reveal bool) []OptionView {
	correct := q.CorrectResponse()
	out := make([]OptionView, len(q.Options))
	for i, text := range q.Options {
		selected := stored.Contains(i)
		isCorrect := correct.Contains(i)

		var st OptionState
		if checked {
			switch {
			case selected && isCorrect:
				st = OptionCorrect
			case selected:
				st = OptionIncorrect
			case reveal && isCorrect:
				st = OptionSolution
			}
		}
		out[i] = OptionView{Index: i, Text: text, Selected: selected, State: st}
	}
	return out
}

func hint(kind model.QuestionKind) string {
	if kind == model.KindMultiple {
		return "Select all that apply."
	}
	return "Choose one option."
}
