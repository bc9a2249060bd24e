//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-booking/internal/infra/backend"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/pkg/sitekey"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	svc := jwt.NewService(testSecret, time.Hour)
	auth := NewAuthMiddleware(svc)

	r := newTestEngine()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		id, _ := GetStaffID(c)
		role, _ := GetStaffRole(c)
		token, _ := backend.TokenFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role, "token": token})
	})

	valid, err := svc.GenerateToken("staff-9", jwt.RoleManager)
	require.NoError(t, err)
	expired, err := jwt.NewService(testSecret, -time.Minute).GenerateToken("staff-9", jwt.RoleManager)
	require.NoError(t, err)
	foreign, err := jwt.NewService("other-secret", time.Hour).GenerateToken("staff-9", jwt.RoleManager)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		expectCode int
	}{
		{name: "valid token", header: "Bearer " + valid, expectCode: http.StatusOK},
		{name: "missing header", header: "", expectCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expectCode: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, expectCode: http.StatusUnauthorized},
		{name: "foreign signature", header: "Bearer " + foreign, expectCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.expectCode, w.Code, w.Body.String())
		})
	}

	t.Run("claims and token reach the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"staff-9","role":"manager","token":"`+valid+`"}`, w.Body.String())
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	auth := NewAuthMiddleware(jwt.NewService(testSecret, time.Hour))

	tests := []struct {
		name       string
		role       string
		minRole    string
		expectCode int
	}{
		{name: "agent meets agent", role: jwt.RoleAgent, minRole: jwt.RoleAgent, expectCode: http.StatusOK},
		{name: "admin meets manager", role: jwt.RoleAdmin, minRole: jwt.RoleManager, expectCode: http.StatusOK},
		{name: "agent below manager", role: jwt.RoleAgent, minRole: jwt.RoleManager, expectCode: http.StatusForbidden},
		{name: "unknown role", role: "intern", minRole: jwt.RoleAgent, expectCode: http.StatusForbidden},
		{name: "no role set", role: "", minRole: jwt.RoleAgent, expectCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine()
			r.GET("/x", func(c *gin.Context) {
				if tt.role != "" {
					c.Set(ctxStaffRoleKey, tt.role)
				}
				c.Next()
			}, auth.RequireRoleAtLeast(tt.minRole), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tt.expectCode, w.Code)
		})
	}
}

func TestRequireSiteKey(t *testing.T) {
	hash, err := sitekey.Hash("public-site-key")
	require.NoError(t, err)

	r := newTestEngine()
	r.POST("/public", RequireSiteKey(sitekey.NewVerifier(hash)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		key        string
		expectCode int
	}{
		{name: "valid key", key: "public-site-key", expectCode: http.StatusNoContent},
		{name: "missing key", key: "", expectCode: http.StatusUnauthorized},
		{name: "wrong key", key: "guess", expectCode: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/public", nil)
			if tt.key != "" {
				req.Header.Set(SiteKeyHeader, tt.key)
			}
			w := serve(r, req)
			assert.Equal(t, tt.expectCode, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }

	r := newTestEngine()
	r.POST("/public", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/public", nil)
		req.RemoteAddr = ip + ":4242"
		return serve(r, req)
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)

	blocked := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "1", blocked.Header().Get("Retry-After"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2").Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)

	t.Run("idle clients are swept", func(t *testing.T) {
		now = now.Add(limiterIdleTTL + time.Minute)
		call("10.0.0.3")
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		assert.Len(t, limiter.clients, 1)
		assert.Contains(t, limiter.clients, "10.0.0.3")
	})
}

func TestNewCORSMiddleware(t *testing.T) {
	cfg := config.CORSConfig{
		AllowOrigins: []string{"http://dashboard.local"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       time.Hour,
	}
	r := newTestEngine()
	r.Use(NewCORSMiddleware(cfg))
	r.POST("/api/bookings", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://dashboard.local", w.Header().Get("Access-Control-Allow-Origin"))
	allowed := w.Header().Get("Access-Control-Allow-Headers")
	assert.Contains(t, allowed, "Idempotency-Key")
	assert.Contains(t, allowed, SiteKeyHeader)
}

func TestWithHeaders(t *testing.T) {
	got := withHeaders([]string{"Content-Type", "X-Trace"}, requiredAllowHeaders)
	assert.Equal(t, []string{"Content-Type", "X-Trace", "Authorization", "Idempotency-Key", SiteKeyHeader}, got)
}

func TestErrorHandler(t *testing.T) {
	t.Run("private errors become 500", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/x", func(c *gin.Context) {
			_ = c.Error(assert.AnError)
		})
		w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())
	})

	t.Run("written responses are left alone", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/x", func(c *gin.Context) {
			_ = c.Error(assert.AnError)
			c.Status(http.StatusTeapot)
			c.Writer.WriteHeaderNow()
		})
		w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("recovery turns panics into 500", func(t *testing.T) {
		r := newTestEngine()
		r.Use(CustomRecovery())
		r.GET("/x", func(c *gin.Context) { panic("boom") })
		w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
