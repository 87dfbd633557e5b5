package types

import (
	"errors"
	"fmt"
	"time"
)

// ProviderID identifies a search provider implementation.
type ProviderID string

const (
	ProviderGoogleCSE ProviderID = "googlecse"
)

var (
	ErrProviderNotFound  = errors.New("search provider not found")
	ErrInvalidProviderID = errors.New("provider ID is required")
	ErrInvalidAPIHost    = errors.New("API host is required")
	ErrMissingAPIKey     = errors.New("API key is required")
	ErrMissingEngineID   = errors.New("search engine ID is required")
)

// ProviderConfig configures a search provider instance.
type ProviderConfig struct {
	ID       ProviderID
	Name     string
	APIHost  string
	APIKey   string
	EngineID string        // custom search engine ID (Google CSE "cx")
	Timeout  time.Duration // per-request bound
}

// Validate checks the provider configuration.
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ID == ProviderGoogleCSE && c.EngineID == "" {
		return ErrMissingEngineID
	}
	return nil
}

// SearchRequest represents a search request.
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// SearchResult represents a single hit. Rank is the provider's return
// order within one request; it is not comparable across requests.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Rank    int    `json:"rank"`
}

// SearchResponse represents a search response.
type SearchResponse struct {
	Query    string          `json:"query"`
	Results  []*SearchResult `json:"results"`
	Took     int64           `json:"took"` // milliseconds
	Provider ProviderID      `json:"provider"`
}

// ProviderError wraps a provider-level failure with its origin.
type ProviderError struct {
	Provider ProviderID
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
