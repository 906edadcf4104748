package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hisab-backoffice/internal/domain/shared"
)

const (
	// SessionCookieName is the cookie carrying the back-office session
	SessionCookieName = "auth_session"

	// TenantKey is the key used to store the resolved tenant in the context
	TenantKey = "tenant"
)

// sessionPayload is the decoded session cookie body
type sessionPayload struct {
	CompanyID string `json:"company_id"`
}

// Session resolves the tenant from the auth_session cookie and aborts the
// request when it cannot. A missing or undecodable cookie is an auth failure
// (401); a decoded session without a usable company id is a bad request (400).
func Session(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookieName)
		if err != nil {
			abortSession(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing session cookie")
			return
		}

		var payload sessionPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			logger.Warn("Undecodable session cookie", "error", err)
			abortSession(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid session cookie")
			return
		}

		if payload.CompanyID == "" {
			abortSession(c, http.StatusBadRequest, "BAD_REQUEST", "Session carries no company")
			return
		}

		companyID, err := uuid.Parse(payload.CompanyID)
		if err != nil {
			logger.Warn("Session carries invalid company id", "company_id", payload.CompanyID)
			abortSession(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid company id in session")
			return
		}

		c.Set(TenantKey, shared.TenantContext{CompanyID: companyID})
		c.Next()
	}
}

func abortSession(c *gin.Context, status int, code, message string) {
	response := gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
	if correlationID := GetCorrelationID(c); correlationID != "" {
		response["correlation_id"] = correlationID
	}
	c.AbortWithStatusJSON(status, response)
}

// GetTenant retrieves the resolved tenant from the gin context if present
func GetTenant(c *gin.Context) (shared.TenantContext, bool) {
	if v, exists := c.Get(TenantKey); exists {
		if tenant, ok := v.(shared.TenantContext); ok {
			return tenant, true
		}
	}
	return shared.TenantContext{}, false
}
