package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/placesapi/placesapi/internal/config"
	"github.com/placesapi/placesapi/internal/errs"
	"github.com/placesapi/placesapi/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &logger,
	}
}

func newEcho(s *server.Server) (*echo.Echo, *Middlewares) {
	mw := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Use(
		RequestID(),
		mw.Metrics.Middleware(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)
	return e, mw
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGlobalErrorHandler(t *testing.T) {
	e, _ := newEcho(testServer())

	e.GET("/empty", func(echo.Context) error {
		return errs.NewNotFoundError("Place not found", false, nil).WithoutBody()
	})
	e.GET("/invalid", func(echo.Context) error {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{
			{Field: "name", Error: "is required"},
			{Field: "latitude", Error: "must be a number"},
		}, nil)
	})
	e.GET("/boom", func(echo.Context) error {
		return errors.New("connection reset by peer")
	})
	e.GET("/panic", func(echo.Context) error {
		panic("unexpected")
	})

	t.Run("empty body", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/empty")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("field errors envelope", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/invalid")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{
			"code": "BAD_REQUEST",
			"message": "Validation failed",
			"status": 400,
			"override": true,
			"errors": {"name": ["is required"], "latitude": ["must be a number"]},
			"action": null
		}`, rec.Body.String())
	})

	t.Run("unknown errors are hidden", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/boom")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
		assert.Contains(t, rec.Body.String(), `"INTERNAL_SERVER_ERROR"`)
	})

	t.Run("panic", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/nowhere")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Route not found")
	})
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFromError(errs.NewNotFoundError("x", false, nil)))
	assert.Equal(t, http.StatusMethodNotAllowed, StatusFromError(echo.ErrMethodNotAllowed))
	assert.Equal(t, http.StatusInternalServerError, StatusFromError(errors.New("x")))
}

func TestRequestID(t *testing.T) {
	e, _ := newEcho(testServer())
	e.GET("/id", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "has space\n")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Len(t, rec.Body.String(), 36)
	assert.NotEqual(t, "has space\n", rec.Header().Get(RequestIDHeader))

	rec = serve(e, http.MethodGet, "/id")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestContextLogger(t *testing.T) {
	e, _ := newEcho(testServer())
	e.GET("/ctx", func(c echo.Context) error {
		assert.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		return c.NoContent(http.StatusNoContent)
	})

	rec := serve(e, http.MethodGet, "/ctx")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
}

func TestMetrics(t *testing.T) {
	e, mw := newEcho(testServer())
	e.GET("/api/places/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return errs.NewNotFoundError("Place not found", false, nil).WithoutBody()
		}
		return c.NoContent(http.StatusOK)
	})

	serve(e, http.MethodGet, "/api/places/1")
	serve(e, http.MethodGet, "/api/places/2")
	serve(e, http.MethodGet, "/api/places/404")
	serve(e, http.MethodGet, "/nowhere")

	rec := httptest.NewRecorder()
	mw.Metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `placesapi_http_requests_total{method="GET",route="/api/places/:id",status="200"} 2`)
	assert.Contains(t, text, `placesapi_http_requests_total{method="GET",route="/api/places/:id",status="404"} 1`)
	assert.Contains(t, text, `placesapi_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.True(t, strings.Contains(text, "go_goroutines"))
}
