package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/shared/auth"
	"bookreview-backend/pkg/jwt"
)

func newTestRouter(manager *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", RequireAuth(manager), func(c *gin.Context) {
		identity, _ := auth.FromContext(c)
		c.JSON(http.StatusOK, identity)
	})
	router.GET("/admin", RequireAuth(manager), RequireRoles(auth.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(manager)

	token, err := manager.Issue(7, "alice", []string{auth.RoleUser})
	require.NoError(t, err)

	w := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestRequireAuthRejectsBadRequests(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(manager)

	expired, err := jwt.NewManager("test-secret", -time.Minute).Issue(7, "alice", []string{auth.RoleUser})
	require.NoError(t, err)

	foreign, err := jwt.NewManager("other-secret", time.Hour).Issue(7, "alice", []string{auth.RoleUser})
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc123",
		"malformed token": "Bearer not.a.token",
		"expired token":   "Bearer " + expired,
		"wrong secret":    "Bearer " + foreign,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, "/protected", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// the body must not reveal which check failed
			assert.Contains(t, w.Body.String(), "authentication required")
		})
	}
}

func TestRequireRoles(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newTestRouter(manager)

	userToken, err := manager.Issue(7, "alice", []string{auth.RoleUser})
	require.NoError(t, err)

	adminToken, err := manager.Issue(8, "root", []string{auth.RoleUser, auth.RoleAdmin})
	require.NoError(t, err)

	w := doRequest(router, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
