package handler

import (
	"net/http"

	"github.com/Mooujj/quiz-hub/internal/middleware"
	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/Mooujj/quiz-hub/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionHandler plays the session named by the request's token.
type SessionHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(quizService *service.QuizService, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		quizService: quizService,
		log:         log.With().Str("component", "session_handler").Logger(),
	}
}

// GetSession godoc
// GET /api/v1/session
// Returns the current screen.
func (h *SessionHandler) GetSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.quizService.View(c.Request.Context(), claims.SessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// PostEvent godoc
// POST /api/v1/session/events
// Applies one action. A rejected action returns the unchanged screen along
// with the error.
func (h *SessionHandler) PostEvent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SessionEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ctx := c.Request.Context()
	ev := quiz.Event{Action: quiz.Action(req.Action), Response: req.Response}
	view, err := h.quizService.Apply(ctx, claims.SessionID, ev)
	if err != nil {
		if isQuizRejection(err) {
			status, code := classify(err)
			current, viewErr := h.quizService.View(ctx, claims.SessionID)
			if viewErr != nil {
				response.Fail(c, status, code)
				return
			}
			response.FailWithData(c, status, code, current)
			return
		}
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetResults godoc
// GET /api/v1/session/results
// Returns score and review once the quiz is finished.
func (h *SessionHandler) GetResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	res, err := h.quizService.Results(c.Request.Context(), claims.SessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// RetryQuiz godoc
// POST /api/v1/session/retry
// Restarts the same quiz with a new randomization. The token stays valid.
func (h *SessionHandler) RetryQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.quizService.RetryQuiz(c.Request.Context(), claims.SessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// EndSession godoc
// DELETE /api/v1/session
// Discards the session and returns to the catalog.
func (h *SessionHandler) EndSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.quizService.End(c.Request.Context(), claims.SessionID); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ended": true})
}

func (h *SessionHandler) fail(c *gin.Context, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Session request failed")
	}
	response.Fail(c, status, code)
}
