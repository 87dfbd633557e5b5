package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/qanunai/legal-advisor-backend/internal/websearch/types"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Search executes a search query.
	Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error)

	// GetID returns the provider ID.
	GetID() types.ProviderID

	// Validate validates the provider configuration.
	Validate() error
}

// BaseProvider provides the shared HTTP client and config access.
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client
}

// NewBaseProvider creates a new base provider.
func NewBaseProvider(config *types.ProviderConfig) *BaseProvider {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &BaseProvider{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// GetID returns the provider ID.
func (b *BaseProvider) GetID() types.ProviderID {
	return b.config.ID
}

// GetConfig returns the provider configuration.
func (b *BaseProvider) GetConfig() *types.ProviderConfig {
	return b.config
}

// GetHTTPClient returns the HTTP client.
func (b *BaseProvider) GetHTTPClient() *http.Client {
	return b.httpClient
}

// Validate validates the provider configuration.
func (b *BaseProvider) Validate() error {
	return b.config.Validate()
}
