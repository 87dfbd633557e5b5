package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/qanunai/legal-advisor-backend/internal/websearch/types"
)

// GoogleCSEProvider implements search over the Google Custom Search API.
type GoogleCSEProvider struct {
	*BaseProvider
}

// NewGoogleCSEProvider creates a new Google CSE provider.
func NewGoogleCSEProvider(config *types.ProviderConfig) (Provider, error) {
	if config.APIHost == "" {
		config.APIHost = "https://www.googleapis.com/customsearch/v1"
	}
	return &GoogleCSEProvider{BaseProvider: NewBaseProvider(config)}, nil
}

// googleCSEResponse represents the customsearch/v1 response subset we use.
type googleCSEResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search executes a search query against the Custom Search API.
func (p *GoogleCSEProvider) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	startTime := time.Now()

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 2
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("cx", p.config.EngineID)
	params.Set("key", p.config.APIKey)
	params.Set("num", strconv.Itoa(maxResults))

	apiURL := fmt.Sprintf("%s?%s", p.config.APIHost, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.GetHTTPClient().Do(httpReq)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     "REQUEST_FAILED",
			Message:  "failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &types.ProviderError{
			Provider: p.GetID(),
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(body),
		}
	}

	var cseResp googleCSEResponse
	if err := json.NewDecoder(resp.Body).Decode(&cseResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]*types.SearchResult, 0, len(cseResp.Items))
	for i, item := range cseResp.Items {
		if item.Link == "" {
			continue
		}
		results = append(results, &types.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Rank:    i,
		})
	}

	return &types.SearchResponse{
		Query:    req.Query,
		Results:  results,
		Took:     time.Since(startTime).Milliseconds(),
		Provider: p.GetID(),
	}, nil
}
