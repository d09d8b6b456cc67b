package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/artwork/pkg/buildinfo"
	"github.com/matzehuels/artwork/pkg/cache"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/pipeline"
)

const circleBoard = `{"artboards": [{"width": 100, "height": 50, "elements": [{"method": "circle", "props": {"r": 10}, "x": 50, "y": 25}]}]}`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	return New(pipeline.NewRunner(fc, nil, nil), opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func renderBody(t *testing.T, fields map[string]any) string {
	t.Helper()
	req := map[string]any{"description": json.RawMessage(circleBoard)}
	for k, v := range fields {
		req[k] = v
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return string(data)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, buildinfo.Version, body["version"])
	assert.Equal(t, buildinfo.Commit, body["commit"])
}

func TestMethods(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/v1/methods", "")
	require.Equal(t, http.StatusOK, w.Code)

	var methods []MethodInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&methods))

	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	assert.Contains(t, names, "circle")
	assert.Contains(t, names, "rect")
}

func TestRenderSVG(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/v1/render", renderBody(t, map[string]any{"format": "svg"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RenderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Outputs, 1)
	assert.False(t, resp.Array)
	assert.False(t, resp.Cached)
	assert.Equal(t, "image/svg+xml", resp.Outputs[0].MIME)
	assert.Contains(t, resp.Outputs[0].Text, "<svg")
}

func TestRenderCached(t *testing.T) {
	srv := newTestServer(t)
	body := renderBody(t, map[string]any{"format": "svg"})

	first := do(t, srv, http.MethodPost, "/v1/render", body)
	require.Equal(t, http.StatusOK, first.Code)

	second := do(t, srv, http.MethodPost, "/v1/render", body)
	require.Equal(t, http.StatusOK, second.Code)

	var resp RenderResponse
	require.NoError(t, json.NewDecoder(second.Body).Decode(&resp))
	assert.True(t, resp.Cached)
	require.Len(t, resp.Outputs, 1)
}

func TestRenderMultipleFormats(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/v1/render", renderBody(t, map[string]any{
		"formats": []string{"svg", "json"},
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RenderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Empty(t, resp.Outputs)
	require.Contains(t, resp.Artifacts, "svg")
	require.Contains(t, resp.Artifacts, "json")
	assert.Len(t, resp.Artifacts["svg"].Outputs, 1)
}

func TestRenderConfigs(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/v1/render", renderBody(t, map[string]any{
		"format":  "svg",
		"configs": []map[string]any{{"r": 5.0}, {"r": 20.0}},
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RenderResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Array)
	assert.Len(t, resp.Outputs, 2)
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"description": `, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing description", `{"format": "svg"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"document path", `{"description": {"document": "/etc/passwd.pdf", "artboards": []}}`, http.StatusBadRequest, "INVALID_PATH"},
		{"no artboards", `{"description": {"artboards": []}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown format", `{"format": "gif", "description": ` + circleBoard + `}`, http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{"unknown method", `{"description": {"artboards": [{"width": 10, "height": 10, "elements": [{"method": "hexagon"}]}]}}`, http.StatusBadRequest, "UNKNOWN_METHOD"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/v1/render", tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestRenderBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, WithMaxBodySize(64))
	body := renderBody(t, map[string]any{"format": "svg", "background": strings.Repeat("x", 128)})

	w := do(t, srv, http.MethodPost, "/v1/render", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRenderMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/v1/render", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestOptionsDefaults(t *testing.T) {
	srv := newTestServer(t, WithDefaults(pipeline.Options{Background: "white", Scale: 2, Supersample: 2}))

	opts := srv.options(RenderRequest{Format: "png", Formats: []string{"svg"}})
	assert.Equal(t, []string{"png", "svg"}, opts.Formats)
	assert.Equal(t, "white", opts.Background)
	assert.Equal(t, 2.0, opts.Scale)
	assert.Equal(t, 2, opts.Supersample)

	opts = srv.options(RenderRequest{Background: "#000", Scale: 0.5})
	assert.Equal(t, "#000", opts.Background)
	assert.Equal(t, 0.5, opts.Scale)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 499, statusFor(context.Canceled))
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

type recordingHooks struct {
	mu        sync.Mutex
	requests  []string
	responses []int
	errors    int
}

func (h *recordingHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func (h *recordingHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/healthz", "")
	do(t, srv, http.MethodPost, "/v1/render", `{}`)

	assert.Equal(t, []string{"GET /healthz", "POST /v1/render"}, hooks.requests)
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, hooks.responses)
	assert.Equal(t, 1, hooks.errors)
}

func TestServeOverHTTP(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/render", "application/json",
		bytes.NewBufferString(renderBody(t, map[string]any{"format": "png", "response": "base64"})))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RenderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Outputs, 1)
	assert.Equal(t, "image/png", out.Outputs[0].MIME)

	data, err := out.Outputs[0].Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}
