package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"id": GetRequestID(c)})
	})

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"reuses client id", "abc-123", true},
		{"generates when missing", "", false},
		{"replaces id with spaces", "not valid", false},
		{"replaces oversized id", strings.Repeat("x", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			if tt.reuse && got != tt.header {
				t.Errorf("X-Request-ID = %q, want %q", got, tt.header)
			}
			if !tt.reuse && (got == "" || got == tt.header) {
				t.Errorf("X-Request-ID = %q, want a fresh id", got)
			}

			var body Response
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Metadata.RequestID != got {
				t.Errorf("metadata request_id = %q, want %q", body.Metadata.RequestID, got)
			}
		})
	}
}

func TestFailWithData(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		FailWithData(c, http.StatusConflict, ErrQuestionLocked, gin.H{"index": 2})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body struct {
		Data     map[string]int `json:"data"`
		Error    ErrorBody      `json:"error"`
		Metadata Metadata       `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["index"] != 2 {
		t.Errorf("data = %v", body.Data)
	}
	if body.Error.Code != ErrQuestionLocked || body.Error.Message != GetMessage(ErrQuestionLocked) {
		t.Errorf("error = %+v", body.Error)
	}
	if body.Metadata.RequestID == "" {
		t.Error("missing request id fallback")
	}
}
