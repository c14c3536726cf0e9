package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/errors"
	"github.com/matzehuels/c4dgml/pkg/observability"
	"github.com/matzehuels/c4dgml/pkg/pipeline"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(nil, nil, logger), logger, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../workspace/testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("%s = %q, want uuid", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, Config{})
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, id)
	}
}

func TestConvertDGML(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Post(ts.URL+"/v1/convert", "application/json", bytes.NewReader(readFixture(t, "shop.json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", resp.Header.Get("X-Cache"))
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("<DirectedGraph")) {
		t.Errorf("body is not a DGML document:\n%s", body)
	}
}

func TestConvertFormatCaseInsensitive(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Post(ts.URL+"/v1/convert?format=%20DGML%20", "application/json", bytes.NewReader(readFixture(t, "shop.json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/xml" {
		t.Errorf("Content-Type = %q, want application/xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("<DirectedGraph")) {
		t.Errorf("body is not a DGML document:\n%s", body)
	}
}

func TestConvertJSONWithOptions(t *testing.T) {
	ts := newTestServer(t, Config{})

	url := ts.URL + "/v1/convert?format=json&views=component&default_background=White"
	resp, err := http.Post(url, "application/json", bytes.NewReader(readFixture(t, "shop.json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	g, err := dgml.ReadJSON(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Errorf("got %d nodes and %d links, want component view only", len(g.Nodes), len(g.Links))
	}
	for _, s := range g.Styles {
		if _, ok := s.Setter(dgml.PropertyBackground); !ok {
			t.Errorf("style %s has no background", s.GroupLabel)
		}
	}
}

func TestConvertYAML(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Post(ts.URL+"/v1/convert?format=dot", "application/yaml", bytes.NewReader(readFixture(t, "shop.yaml")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "digraph") {
		t.Errorf("body = %q, want DOT source", body)
	}
}

func TestConvertErrors(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 64 << 10})
	shop := readFixture(t, "shop.json")

	tests := []struct {
		name     string
		query    string
		body     []byte
		wantCode int
		wantErr  errors.Code
	}{
		{"unknown format", "?format=tower", shop, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown view", "?views=deployment", shop, http.StatusBadRequest, errors.ErrCodeInvalidViewKind},
		{"bad label length", "?max_label_length=abc", shop, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad detailed", "?detailed=maybe", shop, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"empty body", "", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed workspace", "", []byte(`{"model": [`), http.StatusBadRequest, errors.ErrCodeInvalidWorkspace},
		{"too large", "", bytes.Repeat([]byte(" "), 65<<10), http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/convert"+tt.query, "application/json", bytes.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantCode {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if e := decodeError(t, resp); e.Code != tt.wantErr {
				t.Errorf("code = %q, want %q (message %q)", e.Code, tt.wantErr, e.Message)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/v2/nothing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %q", e.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	routes   []string
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, Config{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 || hooks.routes[0] != "/healthz" || hooks.statuses[0] != http.StatusOK {
		t.Errorf("hooks recorded routes=%v statuses=%v", hooks.routes, hooks.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(nil, nil, logger), logger, Config{Addr: "127.0.0.1:0"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
