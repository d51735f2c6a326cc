package model

// SessionEventRequest is the body of POST /api/v1/session/events.
type SessionEventRequest struct {
	Action   string   `json:"action" binding:"required,max=32"`
	Response Response `json:"response"`
}
