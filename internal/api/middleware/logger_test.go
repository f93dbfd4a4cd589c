package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogFormatterWritesJSONAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := chiMiddleware.RequestLogger(NewSlogFormatter(logger))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("nope"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/workouts/abc", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, http.MethodGet, line["method"])
	assert.Equal(t, "/workouts/abc", line["path"])
	assert.EqualValues(t, http.StatusNotFound, line["status"])
	assert.EqualValues(t, 4, line["bytes"])
}

func TestSlogFormatterLogsPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := chiMiddleware.RequestLogger(NewSlogFormatter(logger))(
		chiMiddleware.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})),
	)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), `"msg":"http handler panic"`)
	assert.Contains(t, buf.String(), `"panic":"boom"`)
}
