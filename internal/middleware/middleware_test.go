package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/catalog/internal/config"
	"github.com/deppfellow/catalog/internal/errs"
	"github.com/deppfellow/catalog/internal/logger"
	"github.com/deppfellow/catalog/internal/model"
	"github.com/deppfellow/catalog/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(rateLimit float64) *server.Server {
	l := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "0",
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
		},
		Logger: &l,
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContext_LoggerInRequestContext(t *testing.T) {
	var buf bytes.Buffer
	s := testServer(0)
	l := zerolog.New(&buf)
	s.Logger = &l

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())

	fallback := zerolog.Nop()
	e.GET("/grids/:id", func(c echo.Context) error {
		assert.NotSame(t, &fallback, GetLogger(c))
		logger.FromContext(c.Request().Context(), &fallback).Info().Msg("handled")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/grids/1", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"path":"/grids/:id"`)
	assert.Contains(t, out, `"message":"handled"`)
}

func TestRateLimit(t *testing.T) {
	s := testServer(1)
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).RateLimit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, statuses)
}

func TestRateLimit_Disabled(t *testing.T) {
	s := testServer(0)
	e := echo.New()
	e.Use(NewRateLimitMiddleware(s).RateLimit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	changesetErr := model.ChangeGrid(model.Grid{}, model.GridAttrs{}).WithAction(model.ActionInsert).Err()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "changeset error",
			err:        changesetErr,
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.ValidationFailedCode,
			wantField:  "name",
		},
		{
			name:       "not found",
			err:        errs.NewNotFoundError("Grid not found", true, nil),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505", TableName: "grids", ConstraintName: "grids_slug_key"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "GRID_ALREADY_EXISTS",
			wantField:  "slug",
		},
		{
			name:       "unknown route",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "echo error keeps its status",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
		},
		{
			name:       "storage failure",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewGlobalMiddlewares(testServer(0)).GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)

			if tt.wantField != "" {
				fields := make([]string, 0, len(body.Errors))
				for _, fe := range body.Errors {
					fields = append(fields, fe.Field)
				}
				assert.Contains(t, fields, tt.wantField)
			}
		})
	}
}
