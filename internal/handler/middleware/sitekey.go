package middleware

import (
	"log/slog"
	"net/http"

	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const SiteKeyHeader = "X-Site-Key"

type SiteKeyVerifier interface {
	Verify(key string) error
}

// RequireSiteKey guards the public website routes. Backend calls made for
// these requests use the engine's service token.
func RequireSiteKey(verifier SiteKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(SiteKeyHeader)
		if key == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Site key required", nil)
			return
		}
		if err := verifier.Verify(key); err != nil {
			slog.Warn("Site key rejected", "client_ip", c.ClientIP(), "error", err)
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid site key", nil)
			return
		}
		c.Next()
	}
}
