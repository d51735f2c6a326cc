package handler

import (
	"net/http"

	"github.com/Mooujj/quiz-hub/internal/middleware"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CatalogHandler serves the quiz landing page and starts sessions.
type CatalogHandler struct {
	quizService  *service.QuizService
	tokenService *service.TokenService
	log          zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(quizService *service.QuizService, tokenService *service.TokenService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		quizService:  quizService,
		tokenService: tokenService,
		log:          log.With().Str("component", "catalog_handler").Logger(),
	}
}

// StartSessionResponse is returned when a quiz is started.
type StartSessionResponse struct {
	Token string    `json:"token"`
	View  quiz.View `json:"view"`
}

// ListQuizzes godoc
// GET /api/v1/quizzes
// Returns every quiz in catalog order.
func (h *CatalogHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.List()
	if err != nil {
		status, code := classify(err)
		response.Fail(c, status, code)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// StartSession godoc
// POST /api/v1/quizzes/:quiz_id/sessions
// Starts a freshly randomized session. A session named by a valid token on
// the request is discarded first.
func (h *CatalogHandler) StartSession(c *gin.Context) {
	quizID := c.Param("quiz_id")

	var previous string
	if claims := middleware.GetClaims(c); claims != nil {
		previous = claims.SessionID
	}

	sessionID, view, err := h.quizService.Start(c.Request.Context(), quizID, previous)
	if err != nil {
		status, code := classify(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Str("quiz_id", quizID).Msg("Failed to start session")
		}
		response.Fail(c, status, code)
		return
	}

	token, err := h.tokenService.Issue(sessionID, quizID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to issue session token")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, StartSessionResponse{Token: token, View: view})
}
