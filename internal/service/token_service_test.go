package service

import (
	"testing"
	"time"

	"github.com/Mooujj/quiz-hub/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "secret", JWTExpiry: time.Hour})

	tok, err := svc.Issue("session-1", "basics")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.SessionID != "session-1" || claims.QuizID != "basics" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenRejected(t *testing.T) {
	svc := NewTokenService(&config.Config{JWTSecret: "secret", JWTExpiry: time.Hour})
	other := NewTokenService(&config.Config{JWTSecret: "other", JWTExpiry: time.Hour})

	tok, _ := other.Issue("session-1", "basics")
	if _, err := svc.Parse(tok); err == nil {
		t.Error("token signed with another secret accepted")
	}

	if _, err := svc.Parse("not-a-token"); err == nil {
		t.Error("garbage accepted")
	}

	tok, _ = svc.Issue("session-1", "basics")
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Parse(tok); err == nil {
		t.Error("expired token accepted")
	}
}
