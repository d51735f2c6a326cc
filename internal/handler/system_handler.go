package handler

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/gin-gonic/gin"
)

// CatalogStatus describes the loaded catalog.
type CatalogStatus interface {
	Available() bool
	QuizCount() int
}

// SystemHandler reports process health.
type SystemHandler struct {
	catalog      CatalogStatus
	sessionStore string
	startTime    time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(catalog CatalogStatus, sessionStore string) *SystemHandler {
	return &SystemHandler{
		catalog:      catalog,
		sessionStore: sessionStore,
		startTime:    time.Now(),
	}
}

type healthReport struct {
	Status       string `json:"status"`
	Catalog      bool   `json:"catalog_loaded"`
	Quizzes      int    `json:"quizzes"`
	SessionStore string `json:"session_store"`
	Uptime       string `json:"uptime"`
	Goroutines   int    `json:"goroutines"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	AppRSSBytes  uint64 `json:"app_rss_bytes,omitempty"`
	GoVersion    string `json:"go_version"`
}

// Health godoc
// GET /health
// Always 200 while the process serves; status is "degraded" without a catalog.
func (h *SystemHandler) Health(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r := healthReport{
		Status:       "ok",
		Catalog:      h.catalog.Available(),
		Quizzes:      h.catalog.QuizCount(),
		SessionStore: h.sessionStore,
		Uptime:       formatDuration(time.Since(h.startTime)),
		Goroutines:   runtime.NumGoroutine(),
		HeapAlloc:    ms.HeapAlloc,
		GoVersion:    runtime.Version(),
	}
	if !r.Catalog {
		r.Status = "degraded"
	}
	r.AppRSSBytes, _ = readProcessRSS()

	response.Success(c, http.StatusOK, r)
}

// readProcessRSS reads VmRSS from /proc/self/status.
func readProcessRSS() (uint64, error) {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "VmRSS:") {
			// Format: "VmRSS:     16384 kB"
			fields := strings.Fields(line)
			if len(fields) < 2 {
				break
			}
			kb, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return 0, err
			}
			return kb * 1024, nil
		}
	}
	return 0, fmt.Errorf("VmRSS not found")
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
