package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satoh-er/eui_calc_go/casefile"
	"github.com/satoh-er/eui_calc_go/energycalc"
	"github.com/satoh-er/eui_calc_go/internal/metrics"
	"github.com/satoh-er/eui_calc_go/refdata"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tables, err := refdata.Default()
	require.NoError(t, err)
	m := metrics.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := energycalc.NewEngine(tables, energycalc.EngineOptions{Logger: log, Observer: m})
	srv := httptest.NewServer(New(engine, tables, m, log).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func sampleCase(t *testing.T, name string) casefile.File {
	t.Helper()
	f, err := casefile.Load("../../casefile/testdata/" + name)
	require.NoError(t, err)
	return f
}

func post(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var b []byte
	switch v := body.(type) {
	case string:
		b = []byte(v)
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}
	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, out
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, out
}

func TestReferenceRoutes(t *testing.T) {
	srv := newTestServer(t)

	res, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), refdata.Version)

	res, body = get(t, srv.URL+"/v1/cities")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var cities []refdata.City
	require.NoError(t, json.Unmarshal(body, &cities))
	assert.Len(t, cities, 5)

	res, body = get(t, srv.URL+"/v1/materials")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var cat refdata.Catalogue
	require.NoError(t, json.Unmarshal(body, &cat))
	assert.NotEmpty(t, cat.Materials)
	assert.NotEmpty(t, cat.Windows)
}

func TestEvaluate(t *testing.T) {
	srv := newTestServer(t)

	res, body := post(t, srv.URL+"/v1/evaluate", sampleCase(t, "base.yaml"))
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var out struct {
		ID     string `json:"id"`
		Case   string `json:"case"`
		City   string `json:"city"`
		Energy struct {
			EUI float64 `json:"eui"`
		} `json:"energy"`
		Report struct {
			Rating string `json:"rating"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "base", out.Case)
	assert.Equal(t, "Lahore", out.City)
	assert.Greater(t, out.Energy.EUI, 0.0)
	assert.NotEqual(t, "Not rated", out.Report.Rating)

	res, body = get(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `eui_evaluations_total{case="base",outcome="ok"} 1`)
}

func TestEvaluateErrors(t *testing.T) {
	srv := newTestServer(t)

	t.Run("malformed json", func(t *testing.T) {
		res, _ := post(t, srv.URL+"/v1/evaluate", `{"city": `)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("unknown field", func(t *testing.T) {
		res, _ := post(t, srv.URL+"/v1/evaluate", `{"town": "Lahore"}`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("wrong content type", func(t *testing.T) {
		res, err := http.Post(srv.URL+"/v1/evaluate", "text/plain", strings.NewReader("{}"))
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	})

	t.Run("wrong method", func(t *testing.T) {
		res, _ := get(t, srv.URL+"/v1/evaluate")
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	})

	tests := []struct {
		name           string
		edit           func(f *casefile.File)
		element, field string
	}{
		{"not a number", func(f *casefile.File) { f.FloorPlan.WallHeight = "tall" }, "floor_plan", "wall_height"},
		{"unknown city", func(f *casefile.File) { f.City = "Atlantis" }, "city", "name"},
		{"too few fans", func(f *casefile.File) {
			f.Ventilation.Mode = "mechanical"
			f.Ventilation.Fans = "1"
		}, "ventilation", "fans"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleCase(t, "base.yaml")
			tt.edit(&f)
			res, body := post(t, srv.URL+"/v1/evaluate", f)
			require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, string(body))

			var er ErrorResponse
			require.NoError(t, json.Unmarshal(body, &er))
			assert.Equal(t, tt.element, er.Element)
			assert.Equal(t, tt.field, er.Field)
			assert.NotEmpty(t, er.Error)
		})
	}
}

func TestCompare(t *testing.T) {
	srv := newTestServer(t)

	pair := casefile.Pair{Base: sampleCase(t, "base.yaml"), Proposed: sampleCase(t, "proposed.yaml")}
	res, body := post(t, srv.URL+"/v1/compare", pair)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var c struct {
		Base     struct{ Case string } `json:"base"`
		Proposed struct{ Case string } `json:"proposed"`
	}
	require.NoError(t, json.Unmarshal(body, &c))
	assert.Equal(t, "base", c.Base.Case)
	assert.Equal(t, "proposed", c.Proposed.Case)

	pair.Proposed.Envelope.Window = "Stained glass"
	res, body = post(t, srv.URL+"/v1/compare", pair)
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	var er ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	assert.True(t, strings.HasPrefix(er.Error, "proposed: "), er.Error)
	assert.Equal(t, "window", er.Element)
}
