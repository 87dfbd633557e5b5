package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qanunai/legal-advisor-backend/internal/websearch/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGoogleCSEProvider(&types.ProviderConfig{
		ID:       types.ProviderGoogleCSE,
		Name:     "Google CSE",
		APIHost:  server.URL,
		APIKey:   "test-key",
		EngineID: "test-engine",
	})
	require.NoError(t, err)
	return p
}

func TestGoogleCSEProvider_Search(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "valideyn icazəsi olmadan əqd", r.URL.Query().Get("q"))
		assert.Equal(t, "test-engine", r.URL.Query().Get("cx"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "2", r.URL.Query().Get("num"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"title":"Mülki Məcəllə","link":"https://e-qanun.az/framework/8","snippet":"..."},
			{"title":"Ailə Məcəlləsi","link":"https://e-qanun.az/framework/46","snippet":"..."}
		]}`))
	})

	resp, err := p.Search(context.Background(), &types.SearchRequest{
		Query:      "valideyn icazəsi olmadan əqd",
		MaxResults: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "https://e-qanun.az/framework/8", resp.Results[0].URL)
	assert.Equal(t, 0, resp.Results[0].Rank)
	assert.Equal(t, 1, resp.Results[1].Rank)
	assert.Equal(t, types.ProviderGoogleCSE, resp.Provider)
}

func TestGoogleCSEProvider_Search_NoItems(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	resp, err := p.Search(context.Background(), &types.SearchRequest{Query: "anything"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestGoogleCSEProvider_Search_HTTPError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := p.Search(context.Background(), &types.SearchRequest{Query: "anything"})
	require.Error(t, err)

	var provErr *types.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "HTTP_429", provErr.Code)
}

func TestFactory_Create(t *testing.T) {
	factory := NewFactory()

	p, err := factory.Create(&types.ProviderConfig{
		ID:       types.ProviderGoogleCSE,
		APIKey:   "k",
		EngineID: "cx",
	})
	require.NoError(t, err)
	assert.Equal(t, types.ProviderGoogleCSE, p.GetID())

	_, err = factory.Create(&types.ProviderConfig{ID: "unknown"})
	assert.ErrorIs(t, err, types.ErrProviderNotFound)
}

func TestFactory_Create_InvalidConfig(t *testing.T) {
	factory := NewFactory()

	_, err := factory.Create(&types.ProviderConfig{ID: types.ProviderGoogleCSE, APIKey: "k"})
	assert.ErrorIs(t, err, types.ErrMissingEngineID)
}
