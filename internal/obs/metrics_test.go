package obs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestParseBucketsCSV(t *testing.T) {
	require.Nil(t, ParseBucketsCSV(""))
	require.Equal(t, []float64{5, 50, 500}, ParseBucketsCSV("5, 50,500"))
	require.Equal(t, []float64{10}, ParseBucketsCSV("10, nope, -3"))
}

func TestNewHTTPMetricsReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewHTTPMetrics("gudang", nil, reg)
	second := NewHTTPMetrics("gudang", nil, reg)
	require.Same(t, first.ReqTotal, second.ReqTotal)
}

func TestHTTPObsMiddlewareCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics("gudang", nil, reg)

	handler := HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	count := testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/api/v1/stock", "418"))
	require.Equal(t, 1.0, count)
}

func TestStatusRecorder(t *testing.T) {
	rec := NewStatusRecorder(httptest.NewRecorder())
	require.Equal(t, http.StatusOK, rec.Status())

	rec.WriteHeader(http.StatusConflict)
	_, err := rec.Write([]byte("conflict"))
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, rec.Status())
	require.EqualValues(t, 8, rec.BytesWritten())
}
