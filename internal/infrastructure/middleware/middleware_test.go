package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
)

func TestRequestID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetRequestID(r.Context())))
	})

	mw := RequestID(next)

	// No incoming ID: one is generated and echoed in the header.
	req := httptest.NewRequest("GET", "/exports", nil)
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	generated := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	// Incoming ID is preserved.
	req = httptest.NewRequest("GET", "/exports", nil)
	req.Header.Set("X-Request-ID", "caller-id-9")
	w = httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	assert.Equal(t, "caller-id-9", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "caller-id-9", w.Body.String())
}

func TestGetRequestIDFallback(t *testing.T) {
	assert.Equal(t, "unknown", GetRequestID(context.Background()))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewJSONLogger(&buf, logger.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	})

	mw := RequestLogging(log)(next)

	req := httptest.NewRequest("POST", "/exports", nil)
	w := httptest.NewRecorder()
	mw.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	out := buf.String()
	assert.Contains(t, out, `"path":"/exports"`)
	assert.Contains(t, out, `"status":201`)
}
