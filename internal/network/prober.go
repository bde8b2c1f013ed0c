package network

import (
	"context"
	"fmt"
	"net/http"
)

// HTTPProber treats any HTTP response below 500 from url as "online".
type HTTPProber struct {
	url    string
	client *http.Client
}

func NewHTTPProber(url string, client *http.Client) *HTTPProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProber{url: url, client: client}
}

func (p *HTTPProber) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return fmt.Errorf("create probe request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.url, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe %s: status %d", p.url, resp.StatusCode)
	}
	return nil
}

// StaticProber reports a fixed outcome. It backs the monitor when no probe URL is configured.
type StaticProber struct {
	Err error
}

func (p StaticProber) Probe(context.Context) error {
	return p.Err
}
