package connectivity

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPProbe answers the advisory "does the remote look reachable" question by
// hitting a health URL with a short timeout. An empty URL disables probing
// and always reports online.
type HTTPProbe struct {
	client *resty.Client
	url    string
}

// NewHTTPProbe creates a new connectivity probe
func NewHTTPProbe(url string, timeout time.Duration) *HTTPProbe {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &HTTPProbe{client: client, url: url}
}

// IsOnline reports whether the health URL answered
func (p *HTTPProbe) IsOnline(ctx context.Context) bool {
	if p.url == "" {
		return true
	}
	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return false
	}
	return resp.StatusCode() < 500
}
