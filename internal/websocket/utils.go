package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	readWait  = 30 * time.Minute
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteView sends the current screen.
func WriteView(conn *websocket.Conn, v quiz.View) error {
	return WriteTyped(conn, ViewResponse{Event: EventView, View: v})
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, code, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Code:  code,
		Error: errMsg,
	})
}

// ErrMalformed marks a message that arrived intact but did not decode.
// The connection is still usable.
var ErrMalformed = errors.New("malformed message")

// ReadJSON reads and decodes a message into the provided structure.
// An idle player is disconnected after readWait.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(readWait))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
