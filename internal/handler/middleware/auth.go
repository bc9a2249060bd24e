package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/infra/backend"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxStaffIDKey   = "staff_id"
	ctxStaffRoleKey = "staff_role"
)

var roleHierarchy = map[string]int{
	jwt.RoleAgent:   1,
	jwt.RoleManager: 2,
	jwt.RoleAdmin:   3,
}

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts a dashboard bearer token and forwards it to the rental
// backend on every call made for this request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "Access token required", nil)
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxStaffIDKey, claims.StaffID)
		c.Set(ctxStaffRoleKey, claims.Role)
		c.Set("jwt_claims", map[string]any{
			"staff_id": claims.StaffID,
			"role":     claims.Role,
		})
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), token))
		c.Next()
	}
}

func HasMinimumRole(role, minRole string) bool {
	level, ok := roleHierarchy[role]
	minLevel, minOK := roleHierarchy[minRole]
	return ok && minOK && level >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetStaffRole(c)
		if !ok {
			// RequireAuth must run first
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrUnauthorized, "Internal server error", nil)
			return
		}

		if !HasMinimumRole(role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.ErrUnauthorized, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetStaffID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxStaffIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func GetStaffRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxStaffRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
