package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()
	r := gin.New()
	r.Use(RequestID(), Logger(&logger), Instrument(), SetupCORS(config.CORSConfig{AllowedOrigins: "http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine()

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("X-Request-ID should be set")
		}
		if w.Body.String() != id {
			t.Errorf("handler saw %q, header %q", w.Body.String(), id)
		}
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		r.ServeHTTP(w, req)
		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("X-Request-ID = %q, want %q", got, "abc-123")
		}
	})
}

func TestSetupCORS(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("disallowed origin status = %d, want 403", w.Code)
	}
}
