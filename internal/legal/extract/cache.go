package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
)

const cacheKeyPrefix = "extract:"

// CachedExtractor caches successful extractions by URL. The sources are
// idempotent reads, so a cache hit changes latency only, never the
// answer. Cache failures fall through to the inner extractor.
type CachedExtractor struct {
	inner  DocumentExtractor
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedExtractor wraps an extractor with a redis cache.
func NewCachedExtractor(inner DocumentExtractor, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedExtractor {
	return &CachedExtractor{inner: inner, client: client, ttl: ttl, logger: logger}
}

// ExtractAll serves what it can from the cache and extracts the rest
// through the inner extractor, preserving input order.
func (c *CachedExtractor) ExtractAll(ctx context.Context, urls []string) []types.ExtractedDocument {
	docs := make([]types.ExtractedDocument, len(urls))
	var missURLs []string
	var missIdx []int

	for i, url := range urls {
		if doc, ok := c.get(ctx, url); ok {
			docs[i] = doc
			continue
		}
		missURLs = append(missURLs, url)
		missIdx = append(missIdx, i)
	}

	if len(missURLs) > 0 {
		fetched := c.inner.ExtractAll(ctx, missURLs)
		for j, doc := range fetched {
			docs[missIdx[j]] = doc
			// Only successful extractions are cached; failed sources
			// stay retryable on the next invocation.
			if doc.Present {
				c.set(ctx, doc)
			}
		}
	}

	return docs
}

func (c *CachedExtractor) get(ctx context.Context, url string) (types.ExtractedDocument, bool) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+url).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("extraction cache read failed", zap.String("url", url), zap.Error(err))
		}
		return types.ExtractedDocument{}, false
	}

	var doc types.ExtractedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.logger.Debug("extraction cache entry corrupt", zap.String("url", url), zap.Error(err))
		return types.ExtractedDocument{}, false
	}
	return doc, true
}

func (c *CachedExtractor) set(ctx context.Context, doc types.ExtractedDocument) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+doc.SourceURL, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("extraction cache write failed", zap.String("url", doc.SourceURL), zap.Error(err))
	}
}
