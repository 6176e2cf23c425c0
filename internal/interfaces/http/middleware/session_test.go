package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/sellersync/backend/internal/infrastructure/auth"
)

type stubVerifier struct {
	claims *auth.SessionClaims
	err    error
}

func (s *stubVerifier) Verify(tokenString string) (*auth.SessionClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func newSessionTestRouter(verifier SessionVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionAuth(verifier, nil))
	router.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionSubject(c))
	})
	return router
}

func TestSessionAuth_ValidToken(t *testing.T) {
	verifier := &stubVerifier{claims: &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "operator-1"},
	}}
	router := newSessionTestRouter(verifier)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"some-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "operator-1", w.Body.String())
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	router := newSessionTestRouter(&stubVerifier{})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestSessionAuth_MalformedHeader(t *testing.T) {
	router := newSessionTestRouter(&stubVerifier{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
}

func TestSessionAuth_EmptyToken(t *testing.T) {
	router := newSessionTestRouter(&stubVerifier{})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	router := newSessionTestRouter(&stubVerifier{err: auth.ErrInvalidToken})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	router := newSessionTestRouter(&stubVerifier{err: auth.ErrExpiredToken})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"expired-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestGetSessionClaims_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetSessionClaims(c))
	assert.Empty(t, GetSessionSubject(c))
}
