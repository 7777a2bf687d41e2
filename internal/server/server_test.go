package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	"github.com/matzehuels/mondrian/pkg/config"
	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/seed"
)

func newTestServer(t *testing.T, metrics *Metrics) *httptest.Server {
	t.Helper()
	s := New(Config{Addr: ":0", Defaults: config.Default(), Metrics: metrics})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, header ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status string `json:"status"`
		Build  struct {
			Version string `json:"version"`
		} `json:"build"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, buildinfo.Version, health.Build.Version)
}

func TestMondrianSVG(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/v1/mondrian.svg?seed=42")

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "42", resp.Header.Get(SeedHeader))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
	assert.True(t, bytes.HasPrefix(body, []byte("<svg")))

	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "request id should be a UUID")
}

func TestMondrianDeterministic(t *testing.T) {
	ts := newTestServer(t, nil)
	_, a := get(t, ts, "/v1/mondrian.json?seed=7&step=100")
	_, b := get(t, ts, "/v1/mondrian.json?seed=7&step=100")
	assert.Equal(t, a, b)

	var doc struct {
		Seed uint64 `json:"seed"`
		Step int    `json:"step"`
	}
	require.NoError(t, json.Unmarshal(a, &doc))
	assert.Equal(t, uint64(7), doc.Seed)
	assert.Equal(t, 100, doc.Step)
}

func TestMondrianPNG(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/v1/mondrian.png?seed=1&scale=0.2")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}

func TestMondrianRandomSeed(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, _ := get(t, ts, "/v1/mondrian.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v, err := strconv.ParseUint(resp.Header.Get(SeedHeader), 10, 64)
	require.NoError(t, err)
	assert.Less(t, v, seed.MaxRandom)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestMondrianErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		code errs.Code
	}{
		{"unknown format", "/v1/mondrian.gif?seed=1", errs.ErrCodeInvalidFormat},
		{"bad seed", "/v1/mondrian.svg?seed=abc", errs.ErrCodeInvalidSeed},
		{"negative seed", "/v1/mondrian.svg?seed=-3", errs.ErrCodeInvalidSeed},
		{"bad size", "/v1/mondrian.svg?seed=1&size=big", errs.ErrCodeInvalidCanvas},
		{"negative size", "/v1/mondrian.svg?seed=1&size=-10", errs.ErrCodeInvalidCanvas},
		{"bad step", "/v1/mondrian.svg?seed=1&step=x", errs.ErrCodeInvalidStep},
		{"bad strategy", "/v1/mondrian.svg?seed=1&strategy=spiral", errs.ErrCodeInvalidStrategy},
		{"expensive legacy", "/v1/mondrian.svg?seed=1&strategy=legacy&step=10", errs.ErrCodeInvalidStrategy},
		{"huge png", "/v1/mondrian.png?seed=1&size=10000", errs.ErrCodeInvalidCanvas},
		{"too many candidates", "/v1/mondrian.json?size=20000&step=1", errs.ErrCodeInvalidStep},
		{"fine step on default canvas", "/v1/mondrian.svg?seed=1&step=2", errs.ErrCodeInvalidStep},
		{"bad scale", "/v1/mondrian.png?seed=1&scale=zero", errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))

			var out errorBody
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tt.code, out.Error.Code)
			assert.NotEmpty(t, out.Error.Message)
			assert.NotContains(t, out.Error.Message, string(tt.code)+":")
			assert.Equal(t, resp.Header.Get(RequestIDHeader), out.Error.RequestID)
		})
	}
}

func TestLegacyAllowedAtCoarseStep(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/v1/mondrian.json?seed=3&strategy=legacy&step=250")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestFineStepWithinCandidateLimit(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/v1/mondrian.json?seed=3&size=1000&step=10")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, nil)
	id := uuid.NewString()

	resp, _ := get(t, ts, "/healthz", RequestIDHeader, id)
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	resp, _ = get(t, ts, "/healthz", RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader))
}

func TestSeedEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := get(t, ts, "/v1/seed")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Seed uint64 `json:"seed"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Less(t, out.Seed, seed.MaxRandom)
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, _ := get(t, ts, "/v2/mondrian.svg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts, "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "metrics disabled without a registry")
}

func TestMetrics(t *testing.T) {
	metrics, err := NewMetrics(MetricsConfig{})
	require.NoError(t, err)
	observability.SetPipelineHooks(metrics)
	observability.SetSeedHooks(metrics)
	observability.SetHTTPHooks(metrics)
	defer observability.Reset()

	ts := newTestServer(t, metrics)
	get(t, ts, "/v1/mondrian.svg?seed=42")
	get(t, ts, "/v1/seed")

	resp, body := get(t, ts, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	text := string(body)
	for _, want := range []string{
		`mondrian_layout_generated_total{strategy="sequential"} 1`,
		`mondrian_render_artifacts_total{format="svg"} 1`,
		`mondrian_seed_reseeds_total{trigger="http"} 1`,
		`mondrian_http_requests_total{method="GET",route="/v1/mondrian.{format}",status="200"} 1`,
		"go_goroutines",
	} {
		assert.True(t, strings.Contains(text, want), "metrics output missing %q", want)
	}
}
