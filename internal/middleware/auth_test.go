package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarline/quotation-service/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(t *testing.T, tokens *auth.TokenManager, revoked RevocationCheck, admin bool) *gin.Engine {
	t.Helper()
	router := gin.New()
	group := router.Group("/", RequireAuth(tokens, revoked))
	if admin {
		group.Use(RequireAdmin())
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(ContextUserID),
			"username": c.GetString(ContextUsername),
		})
	})
	return router
}

func doGet(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour)
	router := authRouter(t, tokens, nil, false)

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Basic abc").Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour)
	router := authRouter(t, tokens, nil, false)

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer not-a-jwt").Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour)
	access, err := tokens.IssueAccessToken("usr_1", "alice", false)
	require.NoError(t, err)

	router := authRouter(t, tokens, nil, false)
	w := doGet(router, "Bearer "+access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "usr_1")
	assert.Contains(t, w.Body.String(), "alice")
}

func TestRequireAuthRevokedToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour)
	access, err := tokens.IssueAccessToken("usr_1", "alice", false)
	require.NoError(t, err)

	revoked := func(_ *gin.Context, _ string) (bool, error) { return true, nil }
	router := authRouter(t, tokens, revoked, false)

	assert.Equal(t, http.StatusUnauthorized, doGet(router, "Bearer "+access).Code)
}

func TestRequireAuthRevocationCheckError(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour)
	access, err := tokens.IssueAccessToken("usr_1", "alice", false)
	require.NoError(t, err)

	revoked := func(_ *gin.Context, _ string) (bool, error) { return false, errors.New("db down") }
	router := authRouter(t, tokens, revoked, false)

	assert.Equal(t, http.StatusInternalServerError, doGet(router, "Bearer "+access).Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Minute, time.Hour)

	member, err := tokens.IssueAccessToken("usr_1", "alice", false)
	require.NoError(t, err)
	admin, err := tokens.IssueAccessToken("usr_2", "bob", true)
	require.NoError(t, err)

	router := authRouter(t, tokens, nil, true)
	assert.Equal(t, http.StatusForbidden, doGet(router, "Bearer "+member).Code)
	assert.Equal(t, http.StatusOK, doGet(router, "Bearer "+admin).Code)
}
