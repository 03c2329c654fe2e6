package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satoh-er/eui_calc_go/energycalc"
)

var _ energycalc.Observer = (*Metrics)(nil)

func TestObserveEvaluation(t *testing.T) {
	m := New()
	m.ObserveEvaluation(energycalc.CaseBase, 3*time.Millisecond, nil)
	m.ObserveEvaluation(energycalc.CaseBase, time.Millisecond, errors.New("boom"))
	m.ObserveEvaluation(energycalc.CaseProposed, time.Millisecond, nil)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("base", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("base", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("proposed", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit()
		m.CacheMiss()
		m.ObserveEvaluation(energycalc.CaseBase, time.Second, nil)
	})

	rec := httptest.NewRecorder()
	m.WrapHandler("/x", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestWrapHandlerAndExposition(t *testing.T) {
	m := New()
	h := m.WrapHandler("/v1/evaluate", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/evaluate", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/v1/evaluate", "422")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{route="/v1/evaluate",status="422"} 1`)

	// a second instance registers without colliding
	assert.NotPanics(t, func() { New() })
}
