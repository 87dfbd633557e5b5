package extract

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
)

type fakeInner struct {
	mu    sync.Mutex
	docs  map[string]types.ExtractedDocument
	calls []string
}

func (f *fakeInner) ExtractAll(ctx context.Context, urls []string) []types.ExtractedDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.ExtractedDocument, len(urls))
	for i, url := range urls {
		f.calls = append(f.calls, url)
		if doc, ok := f.docs[url]; ok {
			out[i] = doc
		} else {
			out[i] = types.ExtractedDocument{SourceURL: url}
		}
	}
	return out
}

func newCacheFixture(t *testing.T, inner *fakeInner) *CachedExtractor {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCachedExtractor(inner, client, time.Hour, zap.NewNop())
}

func TestCachedExtractor_SecondCallHitsCache(t *testing.T) {
	inner := &fakeInner{docs: map[string]types.ExtractedDocument{
		"https://e-qanun.az/framework/8": {SourceURL: "https://e-qanun.az/framework/8", Text: "Maddə 28", Present: true},
	}}
	cached := newCacheFixture(t, inner)
	ctx := context.Background()
	urls := []string{"https://e-qanun.az/framework/8"}

	first := cached.ExtractAll(ctx, urls)
	second := cached.ExtractAll(ctx, urls)

	assert.Equal(t, first, second)
	assert.Len(t, inner.calls, 1, "second call must be served from cache")
}

func TestCachedExtractor_AbsentDocumentsAreNotCached(t *testing.T) {
	inner := &fakeInner{}
	cached := newCacheFixture(t, inner)
	ctx := context.Background()
	urls := []string{"https://e-qanun.az/missing"}

	cached.ExtractAll(ctx, urls)
	cached.ExtractAll(ctx, urls)

	assert.Len(t, inner.calls, 2, "failed sources stay retryable")
}

func TestCachedExtractor_MixedHitAndMissKeepsOrder(t *testing.T) {
	inner := &fakeInner{docs: map[string]types.ExtractedDocument{
		"https://a.example": {SourceURL: "https://a.example", Text: "A", Present: true},
		"https://b.example": {SourceURL: "https://b.example", Text: "B", Present: true},
	}}
	cached := newCacheFixture(t, inner)
	ctx := context.Background()

	// Warm only the first URL.
	cached.ExtractAll(ctx, []string{"https://a.example"})

	docs := cached.ExtractAll(ctx, []string{"https://a.example", "https://b.example"})
	require.Len(t, docs, 2)
	assert.Equal(t, "A", docs[0].Text)
	assert.Equal(t, "B", docs[1].Text)
}
