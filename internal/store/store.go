package store

import (
	"context"
	"errors"

	"github.com/Mooujj/quiz-hub/internal/quiz"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps live quiz sessions between requests. Entries expire
// after an idle TTL that every Save and Load refreshes.
type SessionStore interface {
	Save(ctx context.Context, id string, s *quiz.Session) error
	Load(ctx context.Context, id string) (*quiz.Session, error)
	Delete(ctx context.Context, id string) error
}
