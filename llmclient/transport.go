package llmclient

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"
)

// WireResponse is the raw result of one HTTP exchange.
type WireResponse struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Transport performs the blocking HTTP calls a client needs: the
// conversation POST and the attachment GETs. Implementations return a
// *TransportError on network-level failure.
type Transport interface {
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (*WireResponse, error)
	Get(ctx context.Context, url string) (*WireResponse, error)
}

// TransportError is a network-level failure. Response is set when an
// HTTP reply was received before the failure, e.g. when reading the
// body was cut short.
type TransportError struct {
	Message  string
	Cause    error
	Response *WireResponse
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Cause }

// httpTransport is the production Transport with tuned timeouts.
type httpTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a Transport with default timeouts.
func NewHTTPTransport() Transport {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second, // connect timeout
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}
	return &httpTransport{
		client: &http.Client{
			Transport: transport,
			Timeout:   120 * time.Second, // request timeout
		},
	}
}

func (t *httpTransport) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*WireResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Message: "failed to create request", Cause: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return t.do(req)
}

func (t *httpTransport) Get(ctx context.Context, url string) (*WireResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Message: "failed to create request", Cause: err}
	}
	return t.do(req)
}

func (t *httpTransport) do(req *http.Request) (*WireResponse, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Message:  "failed to read response body",
			Cause:    err,
			Response: &WireResponse{StatusCode: resp.StatusCode, Header: resp.Header},
		}
	}
	return &WireResponse{StatusCode: resp.StatusCode, Body: body, Header: resp.Header}, nil
}
