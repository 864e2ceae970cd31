package client

import (
	"context"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/elastic/go-elasticsearch/v8"
)

type RefreshRate string

const (
	// Wait for the changes made by the request to be made visible by a refresh before replying.
	Wait RefreshRate = "wait_for"
	// Immediate Refresh the relevant primary and replica shards (not the whole index) immediately after the operation occurs.
	Immediate RefreshRate = "true"
	// Async Take no refresh related actions. The changes made by this request will be made visible at some point after the request returns.
	Async RefreshRate = "false"
)

// SpanSearcher is the only capability the query service needs from the backend.
type SpanSearcher interface {
	// Search runs a query against the indices and returns its hits and aggregations.
	// https://www.elastic.co/guide/en/elasticsearch/reference/master/search-search.html
	// queryResultSize overrides the size in the query body when not nil.
	Search(ctx context.Context, query string, indices []string, queryResultSize *int) (*model.SearchResult, error)
}

// SpanWriter indexes span documents. Only the seeder and tests write.
type SpanWriter interface {
	// BulkIndex indexes (inserts) multiple documents in the same index
	// https://www.elastic.co/guide/en/elasticsearch/reference/master/docs-bulk.html
	BulkIndex(ctx context.Context, documents []DocumentMap, index string) error
}

type SpanClientImpl struct {
	es          *elasticsearch.Client
	refreshRate string
}

func NewSpanClientImpl(es *elasticsearch.Client, refreshRate RefreshRate) *SpanClientImpl {
	return &SpanClientImpl{es: es, refreshRate: string(refreshRate)}
}
