package credentials

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumegen/internal/shared/server/respond"
	"resumegen/internal/shared/telemetry"
)

// PasswordFromRequest picks the caller's password from the masterPassword query
// parameter, then the already-decoded body field, then a Bearer Authorization header.
func PasswordFromRequest(c *gin.Context, bodyPassword string) string {
	if v := strings.TrimSpace(c.Query("masterPassword")); v != "" {
		return v
	}
	if v := strings.TrimSpace(bodyPassword); v != "" {
		return v
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

// RequireMasterPassword rejects requests whose password, taken from the query or a
// Bearer header, does not verify.
func RequireMasterPassword(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := v.Verify(c.Request.Context(), PasswordFromRequest(c, ""))
		if err == nil {
			c.Next()
			return
		}
		if !errors.Is(err, ErrUnauthorized) {
			telemetry.Error("credentials.lookup_failed", map[string]any{"path": c.Request.URL.Path, "error": err})
		}
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or missing master password", nil)
	}
}
