package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
)

func testSession() *quiz.Session {
	return &quiz.Session{
		Quiz: quiz.Quiz{
			ID:    "basics",
			Title: "Basics",
			Questions: []quiz.Question{
				{Kind: model.KindSingle, Text: "2 + 2?", Options: []string{"3", "4"}, AnswerIndex: 1},
				{Kind: model.KindMultiple, Text: "Primes?", Options: []string{"2", "4", "5"}, AnswerIndexes: []int{0, 2}},
			},
		},
		Index:        1,
		Answers:      []model.Response{model.SingleResponse(0), model.MultiResponse(2)},
		Checked:      []bool{true, false},
		ShowSolution: []bool{false, false},
		Status:       quiz.StatusInProgress,
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(time.Hour)

	if err := m.Save(ctx, "s1", testSession()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Index != 1 || !got.Checked[0] || got.Quiz.Questions[1].Kind != model.KindMultiple {
		t.Errorf("loaded session = %+v", got)
	}
	if i, ok := got.Answers[0].Single(); !ok || i != 0 {
		t.Errorf("answer 0 = %v", got.Answers[0])
	}
	if !got.Answers[1].IsMulti() || !got.Answers[1].Contains(2) {
		t.Errorf("answer 1 = %v", got.Answers[1])
	}

	// Mutating a loaded session does not touch the stored copy.
	got.Index = 0
	again, _ := m.Load(ctx, "s1")
	if again.Index != 1 {
		t.Errorf("stored session was mutated through a loaded copy")
	}

	if err := m.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Load(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Load after Delete err = %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(10 * time.Minute)
	m.now = func() time.Time { return now }

	_ = m.Save(ctx, "idle", testSession())
	_ = m.Save(ctx, "active", testSession())

	now = now.Add(8 * time.Minute)
	if _, err := m.Load(ctx, "active"); err != nil {
		t.Fatalf("Load active: %v", err)
	}

	now = now.Add(5 * time.Minute)
	if _, err := m.Load(ctx, "idle"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session err = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.Load(ctx, "active"); err != nil {
		t.Errorf("Load refreshed session: %v", err)
	}
}

func TestMemoryStoreSweepOnSave(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Minute)
	m.now = func() time.Time { return now }

	_ = m.Save(ctx, "a", testSession())
	_ = m.Save(ctx, "b", testSession())
	now = now.Add(2 * time.Minute)
	_ = m.Save(ctx, "c", testSession())

	if n := m.Len(); n != 1 {
		t.Errorf("Len = %d, want 1 after sweep", n)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Minute)
	m.now = func() time.Time { return now }

	_ = m.Save(ctx, "a", testSession())
	_ = m.Save(ctx, "b", testSession())
	now = now.Add(2 * time.Minute)

	if removed := m.Sweep(); removed != 2 {
		t.Errorf("Sweep = %d, want 2", removed)
	}
	if n := m.Len(); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
}
