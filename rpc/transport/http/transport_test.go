package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/fbstore/rpc/common"
)

func newTestRouter(read func() []byte, write func([]byte) []byte) http.Handler {
	return NewRouter(common.ServerConfig{Path: "/feedback"}, read, write, nil)
}

func connect(t *testing.T, endpoints ...string) *httpClientTransport {
	t.Helper()
	tr := NewHttpClientTransport().(*httpClientTransport)
	if err := tr.Connect(common.ClientConfig{Endpoints: endpoints, TimeoutSecond: 5}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestGetAndPost(t *testing.T) {
	var posted string
	srv := httptest.NewServer(newTestRouter(
		func() []byte { return []byte(`{"status":"ok","data":[]}`) },
		func(b []byte) []byte { posted = string(b); return []byte(`{"status":"ok","id":"x"}`) },
	))
	defer srv.Close()

	tr := connect(t, srv.URL+"/feedback")

	resp, err := tr.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(resp) != `{"status":"ok","data":[]}` {
		t.Errorf("Unexpected GET body: %s", resp)
	}

	resp, err = tr.Post(context.Background(), []byte(`{"id":"x"}`))
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if string(resp) != `{"status":"ok","id":"x"}` {
		t.Errorf("Unexpected POST body: %s", resp)
	}
	if posted != `{"id":"x"}` {
		t.Errorf("Handler received %q", posted)
	}
}

func TestRoundRobin(t *testing.T) {
	var a, b atomic.Int32
	srvA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { a.Add(1) }))
	defer srvA.Close()
	srvB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { b.Add(1) }))
	defer srvB.Close()

	tr := connect(t, srvA.URL, srvB.URL)
	for i := 0; i < 4; i++ {
		if _, err := tr.Get(context.Background()); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
	}
	if a.Load() != 2 || b.Load() != 2 {
		t.Errorf("Expected 2 requests per endpoint, got %d and %d", a.Load(), b.Load())
	}
}

func TestSingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := connect(t, srv.URL)
	if _, err := tr.Get(context.Background()); err == nil {
		t.Fatalf("Expected an error for a 502 response")
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly one request, got %d", calls.Load())
	}
}

func TestConfiguredAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	tr := NewHttpClientTransport()
	if err := tr.Connect(common.ClientConfig{Endpoints: []string{srv.URL}, Attempts: 3}); err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	resp, err := tr.Get(context.Background())
	if err != nil {
		t.Fatalf("Expected the third attempt to succeed, got %v", err)
	}
	if string(resp) != "ok" || calls.Load() != 3 {
		t.Errorf("Unexpected result %q after %d calls", resp, calls.Load())
	}
}

func TestConnectWithoutEndpoints(t *testing.T) {
	err := NewHttpClientTransport().Connect(common.ClientConfig{Endpoints: []string{""}})
	if !errors.Is(err, common.ErrRemoteDisabled) {
		t.Errorf("Expected ErrRemoteDisabled, got %v", err)
	}
	if err := NewHttpClientTransport().Connect(common.ClientConfig{Endpoints: []string{"ftp://host"}}); err == nil {
		t.Errorf("Expected an error for a non-http endpoint")
	}
}

func TestNotInitialized(t *testing.T) {
	if _, err := NewHttpClientTransport().Get(context.Background()); err == nil {
		t.Errorf("Expected an error before Connect")
	}
}

func TestCORSAndMetrics(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(
		func() []byte { return []byte(`{"status":"ok","data":[]}`) },
		func(b []byte) []byte { return b },
	))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/feedback", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS header *, got %q", got)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), `fbstore_http_requests_total{handler="read"}`) {
		t.Errorf("Expected request counter in metrics output")
	}
}
