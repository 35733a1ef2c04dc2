package linker

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Prober asks a viewer server whether a source file exists.
type Prober struct {
	BaseURL string
	Client  *http.Client
}

// NewProber creates a Prober for the server at baseURL.
func NewProber(baseURL string) *Prober {
	return &Prober{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckFileExists reports whether the server answered the existence probe
// with a 2xx status. Transport failures count as "does not exist".
func (p *Prober) CheckFileExists(ctx context.Context, path string) bool {
	u := p.BaseURL + "/api/file-exists?path=" + url.QueryEscape(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
