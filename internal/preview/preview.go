// Package preview is the client for the external link-metadata service.
// Given a URL it returns the page title, description and cover image.
// Scraping itself happens in the collaborator service, not here.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Metadata holds what the preview service knows about a link.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Client fetches link metadata over HTTP from a configured preview endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a preview client for the given service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch asks the preview service for metadata about link.
func (c *Client) Fetch(ctx context.Context, link string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/preview?url=%s", c.baseURL, url.QueryEscape(link))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("preview request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("preview read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview service error (status %d): %s", resp.StatusCode, string(body))
	}

	var meta Metadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("preview decode: %w", err)
	}
	return &meta, nil
}

// Static is a fixed-response fetcher for tests and local development.
type Static struct {
	Meta Metadata
	Err  error
}

// Fetch returns the configured metadata or error.
func (s *Static) Fetch(_ context.Context, _ string) (*Metadata, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	meta := s.Meta
	return &meta, nil
}
