package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mooujj/quiz-hub/internal/catalog"
	"github.com/Mooujj/quiz-hub/internal/config"
	"github.com/Mooujj/quiz-hub/internal/handler"
	"github.com/Mooujj/quiz-hub/internal/middleware"
	"github.com/Mooujj/quiz-hub/internal/model"
	"github.com/Mooujj/quiz-hub/internal/quiz"
	"github.com/Mooujj/quiz-hub/internal/service"
	"github.com/Mooujj/quiz-hub/internal/store"
	"github.com/Mooujj/quiz-hub/internal/validator"
	ws "github.com/Mooujj/quiz-hub/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// identitySource keeps catalog order for questions and options.
type identitySource struct{}

func (identitySource) IntN(n int) int { return n - 1 }

func intPtr(i int) *int { return &i }

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	router *gin.Engine
	t      *testing.T
}

func newTestServer(t *testing.T, cat *catalog.Catalog, loadErr error) *testServer {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		StartRateLimit: 100,
	}
	log := zerolog.Nop()
	engine := quiz.NewEngine(log, quiz.WithSource(identitySource{}))
	quizService := service.NewQuizService(cat, loadErr, store.NewMemoryStore(time.Hour), engine, log)
	tokens := service.NewTokenService(cfg)

	handlers := &Handlers{
		Catalog: handler.NewCatalogHandler(quizService, tokens, log),
		Session: handler.NewSessionHandler(quizService, log),
		WS:      handler.NewWSHandler(quizService, log, nil),
		System:  handler.NewSystemHandler(quizService, config.SessionStoreMemory),
	}
	deps := Deps{
		Tokens:       tokens,
		Catalog:      quizService,
		StartLimiter: middleware.NewRateLimiter(cfg.StartRateLimit, time.Minute),
		Log:          log,
	}
	return &testServer{router: SetupRouter(deps, handlers, cfg), t: t}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]model.QuizDefinition{
		{
			ID:          "basics",
			Title:       "Basics",
			Description: "Warm-up",
			Questions: []model.QuestionDefinition{
				{Text: "2 + 2?", Options: []string{"3", "4", "5"}, AnswerIndex: intPtr(1)},
				{Type: "true-false", Text: "Water is wet.", Answer: new(bool)},
			},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func (s *testServer) start(quizID, previous string) (string, quiz.View) {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/quizzes/"+quizID+"/sessions", previous, nil)
	if code != http.StatusCreated {
		s.t.Fatalf("start: %d %+v", code, env.Error)
	}
	var started handler.StartSessionResponse
	if err := json.Unmarshal(env.Data, &started); err != nil {
		s.t.Fatal(err)
	}
	return started.Token, started.View
}

func TestListQuizzes(t *testing.T) {
	s := newTestServer(t, testCatalog(t), nil)

	code, env := s.do(http.MethodGet, "/api/v1/quizzes", "", nil)
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	var data struct {
		Quizzes []model.QuizSummary `json:"quizzes"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Quizzes) != 1 || data.Quizzes[0].QuestionCount != 2 || data.Quizzes[0].Description != "Warm-up" {
		t.Errorf("quizzes = %+v", data.Quizzes)
	}
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t, testCatalog(t), nil)
	token, view := s.start("basics", "")
	if view.Question == nil || view.Question.Text != "2 + 2?" || view.Question.Hint != "Choose one option." {
		t.Fatalf("start view = %+v", view)
	}

	code, env := s.do(http.MethodPost, "/api/v1/session/events", token, map[string]interface{}{"action": "check"})
	if code != http.StatusUnprocessableEntity || env.Error == nil || env.Error.Code != "NO_SELECTION" {
		t.Fatalf("check without answer: %d %+v", code, env.Error)
	}
	if env.Error.Message != "Please select an answer." {
		t.Errorf("message = %q", env.Error.Message)
	}

	code, env = s.do(http.MethodPost, "/api/v1/session/events", token, map[string]interface{}{"action": "check", "response": 0})
	if code != http.StatusOK {
		t.Fatalf("check: %d %+v", code, env.Error)
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatal(err)
	}
	if view.Question.State != quiz.StateIncorrect || !view.Controls.ShowSolution || view.Question.Options[0].State != quiz.OptionIncorrect {
		t.Fatalf("after wrong check = %+v", view.Question)
	}

	code, env = s.do(http.MethodPost, "/api/v1/session/events", token, map[string]interface{}{"action": "check", "response": 1})
	if code != http.StatusConflict || env.Error.Code != "QUESTION_LOCKED" {
		t.Fatalf("re-check: %d %+v", code, env.Error)
	}

	code, _ = s.do(http.MethodGet, "/api/v1/session/results", token, nil)
	if code != http.StatusConflict {
		t.Errorf("results before finish = %d", code)
	}

	events := []map[string]interface{}{
		{"action": "next"},
		{"action": "select", "response": 1},
		{"action": "finish"},
	}
	for _, ev := range events {
		if code, env = s.do(http.MethodPost, "/api/v1/session/events", token, ev); code != http.StatusOK {
			t.Fatalf("%v: %d %+v", ev, code, env.Error)
		}
	}

	code, env = s.do(http.MethodGet, "/api/v1/session/results", token, nil)
	if code != http.StatusOK {
		t.Fatalf("results: %d", code)
	}
	var res quiz.Result
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.CorrectCount != 1 || res.Total != 2 || res.Percentage != 50 {
		t.Errorf("result = %+v", res)
	}

	code, env = s.do(http.MethodPost, "/api/v1/session/retry", token, nil)
	if code != http.StatusOK {
		t.Fatalf("retry: %d", code)
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatal(err)
	}
	if view.Status != quiz.StatusInProgress || view.Index != 0 {
		t.Errorf("retried view = %+v", view)
	}

	if code, _ = s.do(http.MethodDelete, "/api/v1/session", token, nil); code != http.StatusOK {
		t.Fatalf("end: %d", code)
	}
	code, env = s.do(http.MethodGet, "/api/v1/session", token, nil)
	if code != http.StatusNotFound || env.Error.Code != "SESSION_NOT_FOUND" {
		t.Errorf("after end: %d %+v", code, env.Error)
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestServer(t, testCatalog(t), nil)

	code, env := s.do(http.MethodPost, "/api/v1/quizzes/missing/sessions", "", nil)
	if code != http.StatusNotFound || env.Error.Code != "QUIZ_NOT_FOUND" {
		t.Errorf("unknown quiz: %d %+v", code, env.Error)
	}

	code, env = s.do(http.MethodGet, "/api/v1/session", "", nil)
	if code != http.StatusUnauthorized || env.Error.Code != "TOKEN_REQUIRED" {
		t.Errorf("no token: %d %+v", code, env.Error)
	}

	token, _ := s.start("basics", "")
	code, env = s.do(http.MethodPost, "/api/v1/session/events", token, map[string]interface{}{"response": 1})
	if code != http.StatusBadRequest || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("missing action: %d %+v", code, env.Error)
	}

	code, env = s.do(http.MethodPost, "/api/v1/session/events", token, map[string]interface{}{"action": "dance"})
	if code != http.StatusBadRequest || env.Error.Code != "UNKNOWN_ACTION" {
		t.Errorf("unknown action: %d %+v", code, env.Error)
	}

	code, env = s.do(http.MethodPost, "/api/v1/session/events", token, map[string]interface{}{"action": "select", "response": []int{0}})
	if code != http.StatusUnprocessableEntity || env.Error.Code != "INVALID_RESPONSE" {
		t.Errorf("set for single choice: %d %+v", code, env.Error)
	}
}

func TestStartDiscardsPreviousSession(t *testing.T) {
	s := newTestServer(t, testCatalog(t), nil)

	first, _ := s.start("basics", "")
	second, _ := s.start("basics", first)

	if code, _ := s.do(http.MethodGet, "/api/v1/session", first, nil); code != http.StatusNotFound {
		t.Errorf("old session code = %d, want 404", code)
	}
	if code, _ := s.do(http.MethodGet, "/api/v1/session", second, nil); code != http.StatusOK {
		t.Errorf("new session code = %d", code)
	}
}

func TestCatalogUnavailable(t *testing.T) {
	loadErr := &catalog.LoadError{Source: "url http://example.invalid", Err: errors.New("unexpected status 500")}
	s := newTestServer(t, nil, loadErr)

	code, env := s.do(http.MethodGet, "/api/v1/quizzes", "", nil)
	if code != http.StatusServiceUnavailable || env.Error.Code != "CATALOG_UNAVAILABLE" {
		t.Errorf("list: %d %+v", code, env.Error)
	}

	code, env = s.do(http.MethodGet, "/health", "", nil)
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"degraded"`) {
		t.Errorf("health: %d %s", code, env.Data)
	}
}

func TestWebSocketSession(t *testing.T) {
	s := newTestServer(t, testCatalog(t), nil)
	token, _ := s.start("basics", "")

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/session?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var first ws.ViewResponse
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatal(err)
	}
	if first.Event != ws.EventView || first.View.Index != 0 {
		t.Fatalf("first message = %+v", first)
	}

	send := func(v interface{}) map[string]interface{} {
		t.Helper()
		if err := conn.WriteJSON(v); err != nil {
			t.Fatal(err)
		}
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		return msg
	}

	if msg := send(map[string]string{"action": "ping"}); msg["event"] != "pong" {
		t.Errorf("ping reply = %v", msg)
	}
	if msg := send(map[string]string{"action": "check"}); msg["event"] != "error" || msg["code"] != "NO_SELECTION" {
		t.Errorf("check reply = %v", msg)
	}
	msg := send(map[string]interface{}{"action": "check", "response": 1})
	if msg["event"] != "view" {
		t.Fatalf("check reply = %v", msg)
	}
	question := msg["view"].(map[string]interface{})["question"].(map[string]interface{})
	if question["state"] != string(quiz.StateCorrect) {
		t.Errorf("state = %v", question["state"])
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	var bad map[string]interface{}
	if err := conn.ReadJSON(&bad); err != nil {
		t.Fatal(err)
	}
	if bad["code"] != "INVALID_PAYLOAD" {
		t.Errorf("malformed reply = %v", bad)
	}

	if msg := send(map[string]string{"action": "retry_quiz"}); msg["event"] != "view" {
		t.Errorf("retry_quiz reply = %v", msg)
	}
}
