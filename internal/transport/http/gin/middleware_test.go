package httpgin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/evently/internal/auth"
	"github.com/kirinyoku/evently/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedEngine(tokens *auth.TokenManager, roles ...domain.Role) *gin.Engine {
	r := gin.New()
	r.GET("/p", Authenticate(tokens), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": userID(c)})
	})
	return r
}

func bearer(t *testing.T, tokens *auth.TokenManager, roles ...domain.Role) string {
	t.Helper()

	tok, err := tokens.Issue(&domain.User{ID: 5, Roles: roles})
	require.NoError(t, err)

	return "Bearer " + tok.Token
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "evently", "evently-api", time.Hour)
	r := protectedEngine(tokens, domain.RoleServiceProvider)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"missing role", bearer(t, tokens, domain.RoleUser), http.StatusForbidden},
		{"ok", bearer(t, tokens, domain.RoleServiceProvider), http.StatusOK},
		{"lower-case scheme", "bearer " + bearer(t, tokens, domain.RoleServiceProvider)[7:], http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"user_id":5}`, w.Body.String())
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}
