package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

func (a *SpanClientImpl) Search(
	ctx context.Context,
	query string,
	indices []string,
	queryResultSize *int,
) (*model.SearchResult, error) {
	search := a.es.Search
	options := []func(*esapi.SearchRequest){
		search.WithContext(ctx),
		search.WithIndex(indices...),
		search.WithBody(strings.NewReader(query)),
	}
	if queryResultSize != nil {
		options = append(options, search.WithSize(*queryResultSize))
	}

	res, err := search(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to execute query: %s", res.String())
	}

	var esResponse model.EsResponse
	if err := json.NewDecoder(res.Body).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &model.SearchResult{
		Hits:         esResponse.Hits.HitArray,
		Aggregations: esResponse.Aggregations,
	}, nil
}
