package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{name: "validation", err: ValidationError("bad"), expected: http.StatusBadRequest},
		{name: "unauthorized", err: UnauthorizedError("no"), expected: http.StatusUnauthorized},
		{name: "not found", err: NotFoundError("gone"), expected: http.StatusNotFound},
		{name: "conflict", err: ConflictError("dup"), expected: http.StatusConflict},
		{name: "internal", err: InternalError("boom", nil), expected: http.StatusInternalServerError},
		{name: "external", err: ExternalError("upstream", nil), expected: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus())
		})
	}
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	nf := NotFoundError("missing")
	wrapped := fmt.Errorf("outer: %w", nf)
	assert.Same(t, nf, AsStructuredError(wrapped))

	plain := fmt.Errorf("connection refused")
	converted := AsStructuredError(plain)
	assert.Equal(t, TypeInternal, converted.Type)
	assert.Equal(t, "connection refused", converted.Message)
	assert.ErrorIs(t, converted, plain)
}

func TestMiddleware_WritesEnvelope(t *testing.T) {
	e := echo.New()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_errors_total"}, []string{"type"})
	mw := Middleware(zap.NewNop(), counter)

	handler := mw(func(c echo.Context) error {
		return NotFoundError("No words available").WithField("day", 5)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/word", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"error": "No words available"}, body)
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("not_found")))
}

func TestMiddleware_PassesEchoErrors(t *testing.T) {
	e := echo.New()
	mw := Middleware(zap.NewNop(), nil)

	httpErr := echo.NewHTTPError(http.StatusMethodNotAllowed)
	handler := mw(func(c echo.Context) error {
		return httpErr
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	assert.Equal(t, httpErr, err)
}

func TestMiddleware_StructuredErrorWrappingEchoError(t *testing.T) {
	e := echo.New()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_errors_total"}, []string{"type"})
	mw := Middleware(zap.NewNop(), counter)

	bindErr := echo.NewHTTPError(http.StatusBadRequest, "unexpected EOF")
	handler := mw(func(c echo.Context) error {
		return ValidationError("Invalid JSON body").WithCause(bindErr)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/words", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("validation")))
}
