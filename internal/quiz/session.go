package quiz

import (
	"errors"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// Transition errors. None of them change the session.
var (
	ErrNoSelection       = errors.New("please select an answer")
	ErrQuestionLocked    = errors.New("question already checked")
	ErrActionUnavailable = errors.New("action not available for this question")
	ErrNotAllAnswered    = errors.New("not every question has been answered")
	ErrSessionCompleted  = errors.New("session already completed")
	ErrInvalidResponse   = errors.New("response does not fit the question")
	ErrUnknownAction     = errors.New("unknown action")
)

// Status is the overall lifecycle of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// QuestionState is derived from the checked/solution flags and grading.
type QuestionState string

const (
	StateUnchecked QuestionState = "unchecked"
	StateIncorrect QuestionState = "checked_incorrect"
	StateSolved    QuestionState = "checked_incorrect_solved"
	StateCorrect   QuestionState = "checked_correct"
)

// Action names a user interaction.
type Action string

const (
	ActionSelect        Action = "select"
	ActionCheck         Action = "check"
	ActionShowSolution  Action = "show_solution"
	ActionRetryQuestion Action = "retry_question"
	ActionPrevious      Action = "previous"
	ActionNext          Action = "next"
	ActionFinish        Action = "finish"
)

// Event is one user interaction. Response carries the current form
// selection for select, check and next.
type Event struct {
	Action   Action         `json:"action"`
	Response model.Response `json:"response"`
}

// Session is one attempt at a randomized quiz. Answers, Checked and
// ShowSolution always have one entry per question.
type Session struct {
	Quiz         Quiz             `json:"quiz"`
	Index        int              `json:"index"`
	Answers      []model.Response `json:"answers"`
	Checked      []bool           `json:"checked"`
	ShowSolution []bool           `json:"show_solution"`
	Status       Status           `json:"status"`
}

// Total is the number of questions.
func (s *Session) Total() int { return len(s.Quiz.Questions) }

// Current returns the question at Index.
func (s *Session) Current() Question { return s.Quiz.Questions[s.Index] }

// OnLast reports whether Index points at the final question.
func (s *Session) OnLast() bool { return s.Index == s.Total()-1 }

// State derives the per-question state at i.
func (s *Session) State(i int) QuestionState {
	switch {
	case !s.Checked[i]:
		return StateUnchecked
	case IsCorrect(s.Quiz.Questions[i], s.Answers[i]):
		return StateCorrect
	case s.ShowSolution[i]:
		return StateSolved
	default:
		return StateIncorrect
	}
}

// AllAnswered reports whether every question has an answered response.
func (s *Session) AllAnswered() bool {
	return s.FirstUnanswered() < 0
}

// FirstUnanswered returns the lowest unanswered index, or -1.
func (s *Session) FirstUnanswered() int {
	for i, a := range s.Answers {
		if !IsAnswered(a) {
			return i
		}
	}
	return -1
}

// Select stores the current selection without grading it.
func (s *Session) Select(r model.Response) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.Checked[s.Index] {
		return ErrQuestionLocked
	}
	r, err := fit(s.Current(), r)
	if err != nil {
		return err
	}
	s.Answers[s.Index] = r
	return nil
}

// Check locks in and grades the selection for the current question.
func (s *Session) Check(r model.Response) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.Checked[s.Index] {
		return ErrQuestionLocked
	}
	if !IsAnswered(r) {
		return ErrNoSelection
	}
	r, err := fit(s.Current(), r)
	if err != nil {
		return err
	}
	s.Answers[s.Index] = r
	s.Checked[s.Index] = true
	s.ShowSolution[s.Index] = false
	return nil
}

// RevealSolution marks the correct options of an incorrectly checked
// question for display.
func (s *Session) RevealSolution() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.State(s.Index) != StateIncorrect && s.State(s.Index) != StateSolved {
		return ErrActionUnavailable
	}
	s.ShowSolution[s.Index] = true
	return nil
}

// Previous moves back one question; it does nothing on the first.
func (s *Session) Previous() error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.Index > 0 {
		s.Index--
	}
	return nil
}

// Next commits r as the current answer and advances. From the last
// question it jumps to the first unanswered one, if any.
func (s *Session) Next(r model.Response) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if !s.Checked[s.Index] {
		fitted, err := fit(s.Current(), r)
		if err != nil {
			return err
		}
		s.Answers[s.Index] = fitted
	}

	if !s.OnLast() {
		s.Index++
		return nil
	}
	if i := s.FirstUnanswered(); i >= 0 {
		s.Index = i
	}
	return nil
}

// Finish completes the session and scores it.
func (s *Session) Finish() (Result, error) {
	if err := s.requireInProgress(); err != nil {
		return Result{}, err
	}
	if !s.AllAnswered() {
		return Result{}, ErrNotAllAnswered
	}
	s.Status = StatusCompleted
	return Score(s), nil
}

func (s *Session) requireInProgress() error {
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	return nil
}

// fit checks that r has the shape q expects and only names existing
// options. A null response becomes the empty answer for q.
func fit(q Question, r model.Response) (model.Response, error) {
	if r.IsNull() {
		return q.EmptyResponse(), nil
	}

	if q.Kind == model.KindMultiple {
		if !r.IsMulti() {
			return model.Response{}, ErrInvalidResponse
		}
		for _, i := range r.Indexes() {
			if i < 0 || i >= len(q.Options) {
				return model.Response{}, ErrInvalidResponse
			}
		}
		return r, nil
	}

	i, ok := r.Single()
	if !ok || i < 0 || i >= len(q.Options) {
		return model.Response{}, ErrInvalidResponse
	}
	return r, nil
}
