package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// ErrQuizNotFound is returned when a quiz id does not resolve.
var ErrQuizNotFound = errors.New("quiz not found")

// LoadError reports that the catalog could not be loaded or was invalid.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches the raw quiz definitions from some source.
type Loader interface {
	Load(ctx context.Context) ([]model.QuizDefinition, error)
	Source() string
}

// Catalog is the immutable, ordered set of quizzes.
type Catalog struct {
	quizzes []model.QuizDefinition
	byID    map[string]int
}

// Load runs l once and validates the result. Any failure is a *LoadError.
func Load(ctx context.Context, l Loader) (*Catalog, error) {
	quizzes, err := l.Load(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.Source(), Err: err}
	}
	c, err := New(quizzes)
	if err != nil {
		return nil, &LoadError{Source: l.Source(), Err: err}
	}
	return c, nil
}

// New validates quizzes and indexes them by id.
func New(quizzes []model.QuizDefinition) (*Catalog, error) {
	if err := Validate(quizzes); err != nil {
		return nil, err
	}

	c := &Catalog{
		quizzes: quizzes,
		byID:    make(map[string]int, len(quizzes)),
	}
	for i, q := range quizzes {
		c.byID[q.ID] = i
	}
	return c, nil
}

// Len returns the number of quizzes.
func (c *Catalog) Len() int { return len(c.quizzes) }

// Find resolves a quiz id.
func (c *Catalog) Find(id string) (model.QuizDefinition, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.QuizDefinition{}, fmt.Errorf("%w: %s", ErrQuizNotFound, id)
	}
	return c.quizzes[i], nil
}

// List returns the landing-page summaries in catalog order.
func (c *Catalog) List() []model.QuizSummary {
	out := make([]model.QuizSummary, len(c.quizzes))
	for i, q := range c.quizzes {
		out[i] = q.Summary()
	}
	return out
}

// Quizzes returns the definitions in catalog order.
func (c *Catalog) Quizzes() []model.QuizDefinition {
	out := make([]model.QuizDefinition, len(c.quizzes))
	copy(out, c.quizzes)
	return out
}
