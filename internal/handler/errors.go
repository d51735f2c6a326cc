package handler

import (
	"errors"
	"net/http"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/Mooujj/quiz-hub/internal/store"
)

// classify maps a service error to its HTTP status and API code. Unknown
// errors are internal.
func classify(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, response.ErrCatalogUnavailable
	case errors.Is(err, catalog.ErrQuizNotFound):
		return http.StatusNotFound, response.ErrQuizNotFound
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound, response.ErrSessionNotFound
	case errors.Is(err, quiz.ErrNoSelection):
		return http.StatusUnprocessableEntity, response.ErrNoSelection
	case errors.Is(err, quiz.ErrInvalidResponse):
		return http.StatusUnprocessableEntity, response.ErrInvalidResponse
	case errors.Is(err, quiz.ErrUnknownAction):
		return http.StatusBadRequest, response.ErrUnknownAction
	case errors.Is(err, quiz.ErrQuestionLocked):
		return http.StatusConflict, response.ErrQuestionLocked
	case errors.Is(err, quiz.ErrActionUnavailable):
		return http.StatusConflict, response.ErrActionUnavailable
	case errors.Is(err, quiz.ErrNotAllAnswered):
		return http.StatusConflict, response.ErrNotAllAnswered
	case errors.Is(err, quiz.ErrSessionCompleted):
		return http.StatusConflict, response.ErrSessionCompleted
	case errors.Is(err, service.ErrResultsNotReady):
		return http.StatusConflict, response.ErrResultsNotReady
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}

// isQuizRejection reports errors raised by a quiz transition. The session
// is unchanged after any of them.
func isQuizRejection(err error) bool {
	for _, target := range []error{
		quiz.ErrNoSelection,
		quiz.ErrInvalidResponse,
		quiz.ErrUnknownAction,
		quiz.ErrQuestionLocked,
		quiz.ErrActionUnavailable,
		quiz.ErrNotAllAnswered,
		quiz.ErrSessionCompleted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
