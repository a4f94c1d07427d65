package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gmod-tts/internal/auth"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuth_Secret(t *testing.T) {
	r := newRouter(BearerAuth(auth.New("s3cret")))
	require.Equal(t, http.StatusOK, get(r, "Bearer s3cret").Code)
	require.Equal(t, http.StatusOK, get(r, "bearer s3cret ").Code)
}

func TestBearerAuth_Token(t *testing.T) {
	a := auth.New("s3cret")
	token, err := a.GenerateToken("client", time.Hour)
	require.NoError(t, err)

	r := newRouter(BearerAuth(a))
	require.Equal(t, http.StatusOK, get(r, "Bearer "+token).Code)
}

func TestBearerAuth_Rejected(t *testing.T) {
	r := newRouter(BearerAuth(auth.New("s3cret")))
	for _, header := range []string{"", "Bearer wrong", "Basic s3cret", "s3cret", "Bearer "} {
		w := get(r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		require.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}
}

func TestBearerAuth_NoSecretIsOpen(t *testing.T) {
	r := newRouter(BearerAuth(auth.New("")))
	require.Equal(t, http.StatusOK, get(r, "").Code)
	require.Equal(t, http.StatusOK, get(r, "Bearer whatever").Code)
}

func TestRateLimit(t *testing.T) {
	r := newRouter(RateLimit(0.001, 2))
	require.Equal(t, http.StatusOK, get(r, "").Code)
	require.Equal(t, http.StatusOK, get(r, "").Code)

	w := get(r, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newRouter(RateLimit(0, 0))
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, get(r, "").Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter(RequestLogger(zap.New(core)))

	require.Equal(t, http.StatusOK, get(r, "").Code)
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.Equal(t, "/protected", entries[0].ContextMap()["path"])
	require.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}
