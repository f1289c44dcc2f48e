// Package sources defines the provider adapter interface and the adapters
// for the upstream news APIs the aggregator fans out to.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Article is the canonical article shape every adapter normalizes into.
// URL is the identity: two articles with the same URL are the same article.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"urlToImage,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
}

// HasTimestamp reports whether the upstream published date could be parsed.
// Articles without one rank after all dated articles.
func (a Article) HasTimestamp() bool {
	return !a.PublishedAt.IsZero()
}

// Source is one upstream news provider. Implementations translate their
// provider's wire format into Article and own the mapping from the logical
// category vocabulary to whatever their API expects; topics outside that
// vocabulary pass through as free-text queries.
type Source interface {
	// Name returns the provider's display name.
	Name() string

	// Fetch issues one upstream request for the given topic. It returns an
	// error on any failure (missing credential, transport error, non-2xx
	// status, malformed payload); callers are expected to absorb it.
	Fetch(ctx context.Context, topic string) ([]Article, error)
}

// ErrNoCredential is returned by adapters whose API key is not configured.
// The provider is simply skipped; aggregation continues without it.
var ErrNoCredential = errors.New("api key not configured")

// pageSize is the per-provider result page requested on every fetch.
const pageSize = 20

// logicalCategories is the category vocabulary shared by callers. Adapters
// that support category filtering translate these; anything else is treated
// as a free-text query.
var logicalCategories = map[string]string{
	"technology":    "technology",
	"business":      "business",
	"health":        "health",
	"science":       "science",
	"sports":        "sports",
	"entertainment": "entertainment",
	"general":       "general",
}

// newClient returns the HTTP client adapters use. One attempt per call; any
// retry policy lives above this layer.
func newClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// getJSON performs a GET and decodes the JSON response into v.
func getJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// timeLayouts are the published-date formats seen across providers.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
}

// parseTime parses an upstream published date, returning the zero time when
// no known layout matches.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
