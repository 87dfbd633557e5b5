package provider

import (
	"fmt"
	"sync"

	"github.com/qanunai/legal-advisor-backend/internal/websearch/types"
)

// Factory creates provider instances.
type Factory struct {
	mu           sync.RWMutex
	constructors map[types.ProviderID]func(*types.ProviderConfig) (Provider, error)
}

// NewFactory creates a new provider factory with the built-in providers
// registered.
func NewFactory() *Factory {
	f := &Factory{
		constructors: make(map[types.ProviderID]func(*types.ProviderConfig) (Provider, error)),
	}
	f.Register(types.ProviderGoogleCSE, NewGoogleCSEProvider)
	return f
}

// Register registers a provider constructor.
func (f *Factory) Register(id types.ProviderID, constructor func(*types.ProviderConfig) (Provider, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[id] = constructor
}

// Create creates a provider instance from configuration.
func (f *Factory) Create(config *types.ProviderConfig) (Provider, error) {
	f.mu.RLock()
	constructor, exists := f.constructors[config.ID]
	f.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderNotFound, config.ID)
	}

	p, err := constructor(config)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return p, nil
}
