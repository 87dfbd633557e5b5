package lexicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// Client looks words up in an external Azerbaijani lexicon service. It is
// used only by the language classifier's regional fallback.
type Client struct {
	apiHost    string
	httpClient *http.Client
}

// NewClient creates a lexicon client for the given API host.
func NewClient(apiHost string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		apiHost:    apiHost,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Exists reports whether the word is a confirmed dictionary entry.
// Deployments differ in response shape, so both the boolean `found`
// field and a non-empty `entries` array count as confirmation.
func (c *Client) Exists(ctx context.Context, word string) (bool, error) {
	lookupURL := fmt.Sprintf("%s?word=%s", c.apiHost, url.QueryEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("lexicon lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("lexicon lookup returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	if found := gjson.GetBytes(body, "found"); found.Exists() {
		return found.Bool(), nil
	}
	return gjson.GetBytes(body, "entries.#").Int() > 0, nil
}
