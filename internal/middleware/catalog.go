package middleware

import (
	"net/http"

	"github.com/Mooujj/quiz-hub/internal/response"
	"github.com/gin-gonic/gin"
)

// CatalogChecker reports whether the quiz catalog was loaded.
type CatalogChecker interface {
	Available() bool
}

// RequireCatalog rejects requests with 503 while the catalog is unavailable.
func RequireCatalog(cc CatalogChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cc.Available() {
			response.AbortFail(c, http.StatusServiceUnavailable, response.ErrCatalogUnavailable)
			return
		}
		c.Next()
	}
}
