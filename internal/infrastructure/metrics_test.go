package infrastructure

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide on registration.
	first := NewMetrics()
	second := NewMetrics()

	first.WorkbooksNormalized.Inc()
	first.WorkbooksNormalized.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(first.WorkbooksNormalized))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.WorkbooksNormalized))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.LedgerRows.Set(42)
	m.NormalizationErrors.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "faturacli_ledger_rows 42")
	assert.Contains(t, body, "faturacli_normalization_errors_total 1")
	assert.Contains(t, body, "faturacli_workbooks_normalized_total 0")
}
