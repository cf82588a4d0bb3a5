// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/advisor/pkg/metrics"
)

// Error codes written by the handlers. They double as the error_type label of
// the HTTP error metric.
const (
	codeBadRequest          = "bad_request"
	codeUnknownModel        = "unknown_model"
	codeMalformedIdentifier = "malformed_identifier"
	codeBatchTooLarge       = "batch_too_large"
	codeUnavailable         = "unavailable"
	codeConfigurationError  = "configuration_error"
	codeInternalError       = "internal_error"
	codeNotFound            = "not_found"
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics. Errors
// are labelled with the code the handler wrote, falling back to one derived
// from the status for responses written outside writeError.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000
		statusCodeStr := strconv.Itoa(wrapped.statusCode)

		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)

		if wrapped.statusCode >= http.StatusBadRequest {
			code := wrapped.errorCode
			if code == "" {
				code = codeForStatus(wrapped.statusCode)
			}
			metrics.RecordHTTPError(endpoint, r.Method, code, errorSeverity(code))
		}
	}
}

// codeForStatus names errors whose handler did not report a code, such as
// http.NotFound on a wrong method.
func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return codeNotFound
	case http.StatusRequestEntityTooLarge:
		return codeBatchTooLarge
	case http.StatusServiceUnavailable:
		return codeUnavailable
	}
	if statusCode >= http.StatusInternalServerError {
		return codeInternalError
	}
	return codeBadRequest
}

// errorSeverity ranks an error code: deployment problems are high, caller
// mistakes medium, transient unavailability low.
func errorSeverity(code string) string {
	switch code {
	case codeConfigurationError, codeInternalError:
		return "high"
	case codeUnavailable:
		return "low"
	default:
		return "medium"
	}
}

// responseWriter wraps http.ResponseWriter to capture the status and the
// error code of the response.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	errorCode  string
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}

// setErrorCode remembers the code of an error response so the middleware
// can label it.
func setErrorCode(w http.ResponseWriter, code string) {
	if rw, ok := w.(*responseWriter); ok {
		rw.errorCode = code
	}
}
