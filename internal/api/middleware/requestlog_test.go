package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/99minutos/jobqueue-gateway/pkg/logger"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return "req-1" },
	}))
	e.Use(RequestLogger(log))

	var scopedSeen bool
	e.GET("/ping", func(c echo.Context) error {
		l := logger.Ctx(c.Request().Context())
		l.Info().Msg("inside")
		scopedSeen = true
		return c.NoContent(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if !scopedSeen || rec.Code != http.StatusTeapot {
		t.Fatalf("handler not reached: code=%d", rec.Code)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}

	var inside, access map[string]any
	if err := json.Unmarshal(lines[0], &inside); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if err := json.Unmarshal(lines[1], &access); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if inside["request_id"] != "req-1" {
		t.Fatalf("request-scoped logger missing request_id: %v", inside)
	}
	if access["request_id"] != "req-1" || access["uri"] != "/ping" || access["status"] != float64(http.StatusTeapot) {
		t.Fatalf("unexpected access log: %v", access)
	}
}
