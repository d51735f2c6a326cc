package quiz

import (
	"github.com/rs/zerolog"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// Engine builds randomized sessions and applies events to them.
type Engine struct {
	src Source
	log zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource replaces the random source, mostly for tests.
func WithSource(src Source) Option {
	return func(e *Engine) { e.src = src }
}

// NewEngine creates an Engine drawing from the global math/rand/v2 source.
func NewEngine(log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		src: globalSource{},
		log: log.With().Str("component", "quiz_engine").Logger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start creates a fresh session for def with new question and option order.
func (e *Engine) Start(def model.QuizDefinition) *Session {
	q := e.Randomize(def)
	n := len(q.Questions)

	s := &Session{
		Quiz:         q,
		Answers:      make([]model.Response, n),
		Checked:      make([]bool, n),
		ShowSolution: make([]bool, n),
		Status:       StatusInProgress,
	}
	for i, question := range q.Questions {
		s.Answers[i] = question.EmptyResponse()
	}

	e.log.Debug().
		Str("quiz_id", def.ID).
		Int("questions", n).
		Msg("Session started")
	return s
}

// Randomize returns a normalized copy of def with questions in a new order
// and every question's options permuted. def is not modified.
func (e *Engine) Randomize(def model.QuizDefinition) Quiz {
	order := Permutation(e.src, len(def.Questions))

	questions := make([]Question, 0, len(order))
	for _, i := range order {
		base, fallback := Normalize(def.Questions[i])
		if fallback {
			e.log.Debug().
				Str("quiz_id", def.ID).
				Str("type", def.Questions[i].Type).
				Msg("Unknown question type, treating as single choice")
		}
		questions = append(questions, e.permute(def.ID, base))
	}

	return Quiz{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Questions:   questions,
	}
}

// permute shuffles the options of q and reports unmappable answers as a
// data-quality problem of the catalog.
func (e *Engine) permute(quizID string, q Question) Question {
	out, dropped := permuteOptions(e.src, q)
	if len(dropped) > 0 {
		e.log.Warn().
			Str("quiz_id", quizID).
			Str("question", q.Text).
			Ints("dropped", dropped).
			Msg("Answer index outside options, dropped")
	}
	if out.Kind == model.KindMultiple && len(out.AnswerIndexes) == 0 {
		e.log.Error().
			Str("quiz_id", quizID).
			Str("question", q.Text).
			Msg("Multiple-answer question has no correct option")
	}
	return out
}

// RetryQuestion re-randomizes the option order of the current question and
// clears its answer and flags. Only valid after an incorrect check.
func (e *Engine) RetryQuestion(s *Session) error {
	if err := s.requireInProgress(); err != nil {
		return err
	}
	if s.State(s.Index) != StateIncorrect && s.State(s.Index) != StateSolved {
		return ErrActionUnavailable
	}

	q := e.permute(s.Quiz.ID, s.Quiz.Questions[s.Index])
	s.Quiz.Questions[s.Index] = q
	s.Answers[s.Index] = q.EmptyResponse()
	s.Checked[s.Index] = false
	s.ShowSolution[s.Index] = false
	return nil
}

// Apply dispatches ev to the matching transition. Finish returns the
// score; every other action returns a nil Result.
func (e *Engine) Apply(s *Session, ev Event) (*Result, error) {
	switch ev.Action {
	case ActionSelect:
		return nil, s.Select(ev.Response)
	case ActionCheck:
		return nil, s.Check(ev.Response)
	case ActionShowSolution:
		return nil, s.RevealSolution()
	case ActionRetryQuestion:
		return nil, e.RetryQuestion(s)
	case ActionPrevious:
		return nil, s.Previous()
	case ActionNext:
		return nil, s.Next(ev.Response)
	case ActionFinish:
		res, err := s.Finish()
		if err != nil {
			return nil, err
		}
		return &res, nil
	default:
		return nil, ErrUnknownAction
	}
}
