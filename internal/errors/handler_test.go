package errors

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *ErrorHandler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewErrorHandler(logger, false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestHandleErrorAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/billing/metrics", nil)
	rec := httptest.NewRecorder()

	testHandler().HandleError(rec, req, ErrValidation("date", "Date must be a valid YYYY-MM-DD value"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeValidation, problem["type"])
	assert.Equal(t, "/api/billing/metrics", problem["instance"])
	assert.Equal(t, "VALIDATION_FAILED", problem["error_code"])
}

func TestHandleErrorParsingAppError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/billing/workbook", nil)
	rec := httptest.NewRecorder()

	err := NewParsingError("failed to open workbook", errors.New("zip: not a valid zip file"))
	testHandler().HandleError(rec, req, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, TypeWorkbookUnreadable, problem["type"])
}

func TestHandleErrorContextCancelled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/billing/ledger", nil)
	rec := httptest.NewRecorder()

	testHandler().HandleError(rec, req, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestHandleErrorUnknownErrorStaysOpaque(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/billing/ledger", nil)
	rec := httptest.NewRecorder()

	testHandler().HandleError(rec, req, errors.New("connection refused to 10.0.0.7"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Raw error text never reaches the client.
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	h.NotFound(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/billing/ledger", nil)
	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(
		http.StatusBadRequest,
		TypeValidation,
		"Bad Request",
		"detail text",
		"/api/billing/metrics",
	).WithExtension("trace_id", "abc-123")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "abc-123", decoded["trace_id"])
	assert.Equal(t, float64(http.StatusBadRequest), decoded["status"])
	assert.Equal(t, "detail text", decoded["detail"])
}
