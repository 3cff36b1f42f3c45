package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/catalog/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_AllocatesPerCall(t *testing.T) {
	a := newRequest[*IDRequest]()
	b := newRequest[*IDRequest]()

	require.NotNil(t, a)
	require.NotNil(t, b)
	a.ID = 7
	assert.Zero(t, b.ID)
}

func serve(t *testing.T, route, target string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET(route, h)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	h := Handler{}
	echoID := Handle(h, func(c echo.Context, req *IDRequest) (map[string]int64, error) {
		return map[string]int64{"id": req.ID}, nil
	}, http.StatusAccepted)

	t.Run("binds path params and writes the result", func(t *testing.T) {
		rec := serve(t, "/things/:id", "/things/42", echoID)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	})

	t.Run("rejects invalid requests before the handler", func(t *testing.T) {
		called := false
		handle := Handle(h, func(c echo.Context, req *IDRequest) (string, error) {
			called = true
			return "", nil
		}, http.StatusOK)

		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/things/0", nil), httptest.NewRecorder())
		c.SetPath("/things/:id")
		c.SetParamNames("id")
		c.SetParamValues("0")

		err := handle(c)
		require.Error(t, err)
		assert.False(t, called)

		httpErr, ok := err.(*errs.HTTPError)
		require.True(t, ok)
		assert.Equal(t, errs.ValidationFailedCode, httpErr.Code)
		assert.True(t, httpErr.HasField("id"))
	})

	t.Run("returns handler errors unchanged", func(t *testing.T) {
		notFound := errs.NewNotFoundError("gone", false, nil)
		handle := Handle(h, func(c echo.Context, req *SlugRequest) (string, error) {
			return "", notFound
		}, http.StatusOK)

		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("slug")
		c.SetParamValues("web")

		assert.Same(t, notFound, handle(c))
	})
}

func TestListAllRequest(t *testing.T) {
	assert.True(t, (&ListAllRequest{Order: "name"}).Alphabetical())
	assert.False(t, (&ListAllRequest{}).Alphabetical())
	assert.NoError(t, (&ListAllRequest{}).Validate())
	assert.Error(t, (&ListAllRequest{Order: strings.Repeat("x", 3)}).Validate())
}
