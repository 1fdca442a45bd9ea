package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Property 1: Request Logging
// Every request is logged with method, path, status, duration and timestamp
func TestProperty_RequestLogging(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("all requests are logged with required fields", prop.ForAll(
		func(method string, path string, status int) bool {
			core, logs := observer.New(zapcore.InfoLevel)
			logger := zap.New(core)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(RequestIDMiddleware())
			router.Use(RequestLoggingMiddleware(logger))
			router.Handle(method, path, func(c *gin.Context) {
				c.Status(status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(method, path, nil))

			entries := logs.All()
			if len(entries) != 1 {
				t.Logf("expected one log entry, got %d", len(entries))
				return false
			}

			entry := entries[0]
			switch {
			case status >= 500 && entry.Level != zapcore.ErrorLevel:
				return false
			case status >= 400 && status < 500 && entry.Level != zapcore.WarnLevel:
				return false
			case status < 400 && entry.Level != zapcore.InfoLevel:
				return false
			}

			fields := entry.ContextMap()
			if fields["method"] != method || fields["path"] != path {
				t.Logf("method/path mismatch: %v %v", fields["method"], fields["path"])
				return false
			}
			if fields["status"] != int64(status) {
				t.Logf("status mismatch: %v", fields["status"])
				return false
			}
			for _, key := range []string{"timestamp", "duration", RequestIDKey} {
				if _, ok := fields[key]; !ok {
					t.Logf("%s field missing", key)
					return false
				}
			}
			return fields[RequestIDKey] == w.Header().Get(RequestIDHeader)
		},
		gen.OneConstOf("GET", "POST", "PUT", "PATCH", "DELETE"),
		gen.OneConstOf("/api/v1/profile", "/api/v1/reminders", "/api/v1/dashboard"),
		gen.OneConstOf(http.StatusOK, http.StatusCreated, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property 2: Error Logging Detail
// Errors attached to the context are logged with a stack trace and request context
func TestProperty_ErrorLoggingDetail(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("errors are logged with stack traces and context", prop.ForAll(
		func(errorMessage string, path string) bool {
			core, logs := observer.New(zapcore.ErrorLevel)
			logger := zap.New(core)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(ErrorLoggingMiddleware(logger))
			router.GET(path, func(c *gin.Context) {
				_ = c.Error(&testError{msg: errorMessage})
				c.Status(http.StatusInternalServerError)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

			entries := logs.FilterMessage("Request error occurred").All()
			if len(entries) != 1 {
				t.Logf("expected one error entry, got %d", len(entries))
				return false
			}

			fields := entries[0].ContextMap()
			if fields["error"] != errorMessage || fields["path"] != path || fields["method"] != http.MethodGet {
				return false
			}
			_, ok := fields["stack_trace"]
			return ok
		},
		gen.AlphaString(),
		gen.OneConstOf("/api/v1/reports/progress", "/api/v1/export/backup", "/api/v1/reminders"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "caller-id", w.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryMiddleware(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"Internal server error"}`, w.Body.String())
	require.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	assert.Equal(t, "boom", logs.All()[0].ContextMap()["error"])
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
