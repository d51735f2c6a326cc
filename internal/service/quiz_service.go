package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Quiz service errors.
var (
	ErrCatalogUnavailable = errors.New("quiz catalog is unavailable")
	ErrResultsNotReady    = errors.New("quiz not finished yet")
)

// QuizService plays quizzes from the catalog and keeps each client's
// session in the store.
type QuizService struct {
	catalog *catalog.Catalog
	loadErr error
	store   store.SessionStore
	engine  *quiz.Engine
	locks   *keyedMutex
	log     zerolog.Logger
}

// NewQuizService creates a new QuizService. A nil catalog puts the service
// in unavailable mode; loadErr is reported as the cause.
func NewQuizService(cat *catalog.Catalog, loadErr error, st store.SessionStore, engine *quiz.Engine, log zerolog.Logger) *QuizService {
	return &QuizService{
		catalog: cat,
		loadErr: loadErr,
		store:   st,
		engine:  engine,
		locks:   newKeyedMutex(),
		log:     log.With().Str("component", "quiz_service").Logger(),
	}
}

// Available reports whether the catalog was loaded.
func (s *QuizService) Available() bool { return s.catalog != nil }

// QuizCount is the number of quizzes in the catalog, 0 when unavailable.
func (s *QuizService) QuizCount() int {
	if s.catalog == nil {
		return 0
	}
	return s.catalog.Len()
}

func (s *QuizService) requireCatalog() error {
	if s.catalog == nil {
		if s.loadErr != nil {
			return fmt.Errorf("%w: %v", ErrCatalogUnavailable, s.loadErr)
		}
		return ErrCatalogUnavailable
	}
	return nil
}

// List returns the catalog landing page.
func (s *QuizService) List() ([]model.QuizSummary, error) {
	if err := s.requireCatalog(); err != nil {
		return nil, err
	}
	return s.catalog.List(), nil
}

// Start begins a fresh session of quizID. A previous session, if given, is
// discarded.
func (s *QuizService) Start(ctx context.Context, quizID, previousID string) (string, quiz.View, error) {
	if err := s.requireCatalog(); err != nil {
		return "", quiz.View{}, err
	}
	def, err := s.catalog.Find(quizID)
	if err != nil {
		return "", quiz.View{}, err
	}

	if previousID != "" {
		if err := s.End(ctx, previousID); err != nil {
			s.log.Warn().Err(err).Str("session_id", previousID).Msg("Failed to discard previous session")
		}
	}

	id := uuid.New().String()
	sess := s.engine.Start(def)
	if err := s.store.Save(ctx, id, sess); err != nil {
		return "", quiz.View{}, fmt.Errorf("save session: %w", err)
	}

	s.log.Info().
		Str("session_id", id).
		Str("quiz_id", quizID).
		Int("questions", sess.Total()).
		Msg("Quiz started")
	return id, quiz.Render(sess), nil
}

// View renders the current state of a session.
func (s *QuizService) View(ctx context.Context, id string) (quiz.View, error) {
	if err := s.requireCatalog(); err != nil {
		return quiz.View{}, err
	}
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return quiz.View{}, err
	}
	return quiz.Render(sess), nil
}

// Apply runs one event against the session. A rejected event leaves the
// stored session untouched.
func (s *QuizService) Apply(ctx context.Context, id string, ev quiz.Event) (quiz.View, error) {
	if err := s.requireCatalog(); err != nil {
		return quiz.View{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return quiz.View{}, err
	}

	res, err := s.engine.Apply(sess, ev)
	if err != nil {
		return quiz.View{}, err
	}
	if err := s.store.Save(ctx, id, sess); err != nil {
		return quiz.View{}, fmt.Errorf("save session: %w", err)
	}

	if res != nil {
		s.log.Info().
			Str("session_id", id).
			Str("quiz_id", res.QuizID).
			Int("correct", res.CorrectCount).
			Int("total", res.Total).
			Msg("Quiz finished")
	}
	return quiz.Render(sess), nil
}

// Results returns the score and review of a finished session.
func (s *QuizService) Results(ctx context.Context, id string) (*quiz.Result, error) {
	if err := s.requireCatalog(); err != nil {
		return nil, err
	}
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != quiz.StatusCompleted {
		return nil, ErrResultsNotReady
	}
	res := quiz.Score(sess)
	return &res, nil
}

// RetryQuiz restarts the session's quiz from its definition with a fresh
// randomization, keeping the session id.
func (s *QuizService) RetryQuiz(ctx context.Context, id string) (quiz.View, error) {
	if err := s.requireCatalog(); err != nil {
		return quiz.View{}, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	old, err := s.store.Load(ctx, id)
	if err != nil {
		return quiz.View{}, err
	}
	def, err := s.catalog.Find(old.Quiz.ID)
	if err != nil {
		return quiz.View{}, err
	}

	sess := s.engine.Start(def)
	if err := s.store.Save(ctx, id, sess); err != nil {
		return quiz.View{}, fmt.Errorf("save session: %w", err)
	}

	s.log.Info().Str("session_id", id).Str("quiz_id", def.ID).Msg("Quiz restarted")
	return quiz.Render(sess), nil
}

// End discards a session.
func (s *QuizService) End(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
