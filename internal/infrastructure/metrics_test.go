package infrastructure

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	// Two instances must not collide: each carries its own registry.
	require.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.DatasetRecords.Set(42)
	m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/dashboard/series", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "wagelens_dataset_records 42")
	assert.Contains(t, body, "wagelens_http_requests_total")
}
