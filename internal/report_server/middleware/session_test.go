package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hisab-backoffice/internal/domain/shared"
)

func sessionTestRouter(captured *shared.TenantContext) *gin.Engine {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	router := gin.New()
	router.Use(CorrelationID())
	router.Use(Session(logger))
	router.GET("/protected", func(c *gin.Context) {
		tenant, ok := GetTenant(c)
		if ok && captured != nil {
			*captured = tenant
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ResolvesTenantFromCookie", func(t *testing.T) {
		var captured shared.TenantContext
		router := sessionTestRouter(&captured)

		companyID := uuid.New()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{
			Name:  SessionCookieName,
			Value: `{"company_id":"` + companyID.String() + `"}`,
		})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, companyID, captured.CompanyID)
	})

	t.Run("MissingCookieIsUnauthorized", func(t *testing.T) {
		router := sessionTestRouter(nil)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
	})

	t.Run("UndecodableCookieIsUnauthorized", func(t *testing.T) {
		router := sessionTestRouter(nil)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-json"})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("MissingCompanyIDIsBadRequest", func(t *testing.T) {
		router := sessionTestRouter(nil)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: `{}`})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("InvalidCompanyIDIsBadRequest", func(t *testing.T) {
		router := sessionTestRouter(nil)

		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{
			Name:  SessionCookieName,
			Value: `{"company_id":"not-a-uuid"}`,
		})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsTenantIfSet", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		expected := shared.TenantContext{CompanyID: uuid.New()}
		c.Set(TenantKey, expected)

		tenant, ok := GetTenant(c)
		assert.True(t, ok)
		assert.Equal(t, expected, tenant)
	})

	t.Run("ReturnsFalseIfUnset", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		_, ok := GetTenant(c)
		assert.False(t, ok)
	})
}
