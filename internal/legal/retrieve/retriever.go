package retrieve

import (
	"context"

	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
	"github.com/qanunai/legal-advisor-backend/internal/pkg/workerpool"
	searchtypes "github.com/qanunai/legal-advisor-backend/internal/websearch/types"
)

// Searcher is the search-provider contract the retriever needs.
type Searcher interface {
	Search(ctx context.Context, req *searchtypes.SearchRequest) (*searchtypes.SearchResponse, error)
}

// Retriever runs sub-queries against the search provider and merges the
// hits into a deduplicated, deterministically ordered SourceSet.
type Retriever struct {
	searcher Searcher
	pool     *workerpool.Pool
	pageSize int
	logger   *zap.Logger
}

// NewRetriever creates a retriever with a fixed page size per sub-query.
func NewRetriever(searcher Searcher, pool *workerpool.Pool, pageSize int, logger *zap.Logger) *Retriever {
	if pageSize <= 0 {
		pageSize = 2
	}
	return &Retriever{searcher: searcher, pool: pool, pageSize: pageSize, logger: logger}
}

// Retrieve searches every sub-query concurrently and returns the unique
// URLs. Results are collected into per-sub-query slots first and merged
// afterwards, so the final order is a pure function of (sub-query index,
// provider rank) regardless of network completion timing. A failed
// sub-query contributes no hits and does not abort the others.
func (r *Retriever) Retrieve(ctx context.Context, subqueries []string) *types.SourceSet {
	hits := make([][]*searchtypes.SearchResult, len(subqueries))

	r.pool.Each(len(subqueries), func(i int) {
		resp, err := r.searcher.Search(ctx, &searchtypes.SearchRequest{
			Query:      subqueries[i],
			MaxResults: r.pageSize,
		})
		if err != nil {
			r.logger.Warn("sub-query search failed",
				zap.String("subquery", subqueries[i]),
				zap.Error(err))
			return
		}
		hits[i] = resp.Results
	})

	set := types.NewSourceSet()
	for i, results := range hits {
		for _, hit := range results {
			if set.Add(hit.URL) {
				r.logger.Debug("source collected",
					zap.String("url", hit.URL),
					zap.Int("subquery_index", i),
					zap.Int("rank", hit.Rank))
			}
		}
	}
	return set
}
