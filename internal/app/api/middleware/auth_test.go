package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/types"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub string, role types.ActorRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthRouter(roles ...types.ActorRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{Secret: testSecret}}
	r := gin.New()
	r.GET("/probe", AuthMiddleware(cfg, roles...), func(c *gin.Context) {
		actor := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": string(actor.Role)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		roles      []types.ActorRole
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid admin token",
			roles:      []types.ActorRole{types.ActorRoleAdmin},
			authHeader: "Bearer " + signToken(t, testSecret, "admin-1", types.ActorRoleAdmin),
			wantStatus: http.StatusOK,
		},
		{
			name:       "role not in allow list",
			roles:      []types.ActorRole{types.ActorRoleAdmin},
			authHeader: "Bearer " + signToken(t, testSecret, "user-1", types.ActorRoleUser),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "any role accepted when no list given",
			authHeader: "Bearer " + signToken(t, testSecret, "user-1", types.ActorRoleUser),
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong signing key",
			authHeader: "Bearer " + signToken(t, "other-secret", "user-1", types.ActorRoleUser),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(tt.roles...)
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareRejectsTokenWithoutClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	r := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
