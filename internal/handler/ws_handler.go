package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Mooujj/quiz-hub/internal/middleware"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/Mooujj/quiz-hub/internal/service"
	ws "github.com/Mooujj/quiz-hub/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a quiz session over a WebSocket.
type WSHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(quizService *service.QuizService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		quizService: quizService,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/session?token=...
// Sends the current view on connect, then one view or error per action.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	sessionID := claims.SessionID
	wsLog := h.log.With().Str("session_id", sessionID).Logger()

	view, err := h.quizService.View(ctx, sessionID)
	if err != nil {
		h.writeErr(conn, wsLog, err)
		return
	}
	if err := ws.WriteView(conn, view); err != nil {
		return
	}
	wsLog.Info().Msg("Player connected")

	for {
		var msg ws.Request
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if errors.Is(err, ws.ErrMalformed) {
				ws.WriteError(conn, string(response.ErrInvalidPayload), response.GetMessage(response.ErrInvalidPayload))
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		case ws.ActionRetryQuiz:
			view, err = h.quizService.RetryQuiz(ctx, sessionID)
			err = h.reply(conn, wsLog, view, err)
		default:
			view, err = h.quizService.Apply(ctx, sessionID, msg.Event())
			err = h.reply(conn, wsLog, view, err)
		}
		if err != nil {
			return
		}
	}
}

// reply sends the view, or the classified error when the action failed. It
// returns only write errors.
func (h *WSHandler) reply(conn *websocket.Conn, log zerolog.Logger, view quiz.View, actionErr error) error {
	if actionErr != nil {
		return h.writeErr(conn, log, actionErr)
	}
	return ws.WriteView(conn, view)
}

func (h *WSHandler) writeErr(conn *websocket.Conn, log zerolog.Logger, err error) error {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Session action failed")
	}
	return ws.WriteError(conn, string(code), response.GetMessage(code))
}
