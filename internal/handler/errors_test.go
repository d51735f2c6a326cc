package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/Mooujj/quiz-hub/internal/store"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   response.ErrCode
	}{
		{fmt.Errorf("%w: boom", service.ErrCatalogUnavailable), http.StatusServiceUnavailable, response.ErrCatalogUnavailable},
		{fmt.Errorf("%w: x", catalog.ErrQuizNotFound), http.StatusNotFound, response.ErrQuizNotFound},
		{store.ErrSessionNotFound, http.StatusNotFound, response.ErrSessionNotFound},
		{quiz.ErrNoSelection, http.StatusUnprocessableEntity, response.ErrNoSelection},
		{quiz.ErrQuestionLocked, http.StatusConflict, response.ErrQuestionLocked},
		{quiz.ErrNotAllAnswered, http.StatusConflict, response.ErrNotAllAnswered},
		{service.ErrResultsNotReady, http.StatusConflict, response.ErrResultsNotReady},
		{errors.New("redis: connection refused"), http.StatusInternalServerError, response.ErrInternal},
	}
	for _, tt := range tests {
		status, code := classify(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("classify(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}

	if !isQuizRejection(quiz.ErrSessionCompleted) || isQuizRejection(store.ErrSessionNotFound) {
		t.Error("isQuizRejection misclassifies")
	}
}
