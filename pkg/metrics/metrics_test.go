package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	obs := m.Observer("powers")
	obs.ObserveRecord(true)
	obs.ObserveRecord(true)
	obs.ObserveRecord(false)
	obs.ObserveWarning()
	obs.ObserveFile(2, 1, 10*time.Millisecond, nil)
	m.Observer("classes").ObserveFile(0, 0, time.Millisecond, errors.New("bad signature"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decodeRecordsTotal.WithLabelValues("powers", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeRecordsTotal.WithLabelValues("powers", statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeWarnings.WithLabelValues("powers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeFilesTotal.WithLabelValues("powers", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeFilesTotal.WithLabelValues("classes", statusError)))
}

func TestInstrumentHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	handler := m.InstrumentHandler("GET", "/api/v1/bins/{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bins/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/bins/{kind}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpRequestsInFlight.WithLabelValues("GET", "/api/v1/bins/{kind}")))
}

func TestInstrumentAuthMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Key") != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := m.InstrumentAuthMiddleware(deny)(ok)

	for _, key := range []string{"secret", "wrong", ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.authRequestsTotal.WithLabelValues(statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authRequestsTotal.WithLabelValues(statusError)))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.Observer("powers").ObserveRecord(true)

	path := filepath.Join(t.TempDir(), "cohbin.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cohbin_decode_records_total{kind="powers",status="success"} 1`)
}
