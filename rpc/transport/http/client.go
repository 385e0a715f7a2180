package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/transport"
)

func NewHttpClientTransport() transport.IClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	serverURLs []*url.URL
	client     *http.Client
	counter    uint32
	attempts   int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	// Parse each server URL
	parsedURLs := make([]*url.URL, 0, len(config.Endpoints))
	for _, server := range config.Endpoints {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		parsedURL, err := url.Parse(server)
		if err != nil {
			return err
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("unsupported endpoint %q: scheme must be http or https", server)
		}
		parsedURLs = append(parsedURLs, parsedURL)
	}
	if len(parsedURLs) == 0 {
		return common.ErrRemoteDisabled
	}

	// Create client with default transport
	client := &http.Client{
		Timeout: time.Duration(config.TimeoutSecond) * time.Second,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	t.client = client
	t.serverURLs = parsedURLs
	t.counter = 0
	t.attempts = max(1, config.Attempts)

	return nil
}

func (t *httpClientTransport) Get(ctx context.Context) ([]byte, error) {
	return t.do(ctx, http.MethodGet, nil)
}

func (t *httpClientTransport) Post(ctx context.Context, req []byte) ([]byte, error) {
	return t.do(ctx, http.MethodPost, req)
}

func (t *httpClientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}

	t.client = nil
	t.serverURLs = nil

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// do sends one request to the next endpoint (round-robin) and returns the body.
// A request is only sent again if the configuration asks for more than one attempt.
func (t *httpClientTransport) do(ctx context.Context, method string, body []byte) (resp []byte, err error) {
	if t.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}

	for i := 0; i < t.attempts; i++ {
		idx := atomic.AddUint32(&t.counter, 1) % uint32(len(t.serverURLs))
		resp, err = t.once(ctx, method, t.serverURLs[idx].String(), body)
		if err == nil || ctx.Err() != nil {
			return resp, err
		}
		Logger.Debugf("%s %s failed (attempt %d/%d): %v", method, t.serverURLs[idx].Redacted(), i+1, t.attempts, err)
	}
	return nil, err
}

func (t *httpClientTransport) once(ctx context.Context, method, requestURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		// text/plain keeps browser based service deployments free of CORS preflights
		httpRequest.Header.Set("Content-Type", "text/plain;charset=utf-8")
	}

	httpResponse, err := t.client.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error: %s", httpResponse.Status)
	}

	return io.ReadAll(httpResponse.Body)
}
