package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Mooujj/quiz-hub/internal/model"
)

// Decode reads a catalog document. A missing "quizzes" field yields an
// empty catalog.
func Decode(r io.Reader) ([]model.QuizDefinition, error) {
	var doc model.Catalog
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if doc.Quizzes == nil {
		return []model.QuizDefinition{}, nil
	}
	return doc.Quizzes, nil
}

// FileLoader reads the catalog from a local JSON file.
type FileLoader struct {
	Path string
}

func (l FileLoader) Source() string { return "file " + l.Path }

func (l FileLoader) Load(_ context.Context) ([]model.QuizDefinition, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// HTTPLoader fetches the catalog with a single uncached GET.
type HTTPLoader struct {
	URL    string
	Client *http.Client
}

func (l HTTPLoader) Source() string { return "url " + l.URL }

func (l HTTPLoader) Load(ctx context.Context) ([]model.QuizDefinition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}

// QuizLister is a store that can list every quiz in catalog order.
type QuizLister interface {
	ListQuizzes(ctx context.Context) ([]model.QuizDefinition, error)
}

// RepositoryLoader reads the catalog from a database repository.
type RepositoryLoader struct {
	Repo QuizLister
	Name string
}

func (l RepositoryLoader) Source() string { return l.Name }

func (l RepositoryLoader) Load(ctx context.Context) ([]model.QuizDefinition, error) {
	quizzes, err := l.Repo.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []model.QuizDefinition{}
	}
	return quizzes, nil
}
