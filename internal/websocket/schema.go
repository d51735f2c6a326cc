package websocket

import (
	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

// Quiz actions reuse the engine's names; these two are stream-only.
const (
	ActionPing      quiz.Action = "ping"
	ActionRetryQuiz quiz.Action = "retry_quiz"
)

// Request is one client message.
type Request struct {
	Action   quiz.Action    `json:"action"`
	Response model.Response `json:"response"`
}

// Event converts the request into an engine event.
func (r Request) Event() quiz.Event {
	return quiz.Event{Action: r.Action, Response: r.Response}
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventView  Event = "view"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// ViewResponse carries the screen after an accepted action.
type ViewResponse struct {
	Event Event     `json:"event"`
	View  quiz.View `json:"view"`
}

// ErrorResponse reports a rejected action. The session is unchanged.
type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
