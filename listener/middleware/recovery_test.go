package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureErrorLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})))

	t.Cleanup(func() { slog.SetDefault(original) })

	return &buf
}

func TestRecovery_PanicReturnsJSON500(t *testing.T) { //nolint:paralleltest // modifies global slog default
	captureErrorLog(t)

	handler := Recovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("something went wrong")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/walk/a", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}

func TestRecovery_LogsPanicWithRequestID(t *testing.T) { //nolint:paralleltest // modifies global slog default
	buf := captureErrorLog(t)

	handler := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("test panic value") }),
		RequestID(),
		Recovery(),
	)

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "0b5b5f2e-9c55-4a61-a4b4-0f3f6d2f0c11")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "panic recovered")
	assert.Contains(t, logOutput, "test panic value")
	assert.Contains(t, logOutput, "goroutine")
	assert.Contains(t, logOutput, "/panic")
	assert.Contains(t, logOutput, "0b5b5f2e-9c55-4a61-a4b4-0f3f6d2f0c11")
}

func TestRecovery_ErrAbortHandlerRePanics(t *testing.T) { //nolint:paralleltest // modifies global slog default
	captureErrorLog(t)

	handler := Recovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestRecovery_PanicAfterPartialWrite(t *testing.T) { //nolint:paralleltest // modifies global slog default
	buf := captureErrorLog(t)

	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))

		panic("late panic")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	assert.Contains(t, buf.String(), "response_already_written")
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) { //nolint:paralleltest // modifies global slog default
	buf := captureErrorLog(t)

	handler := Recovery()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, buf.String())
}
