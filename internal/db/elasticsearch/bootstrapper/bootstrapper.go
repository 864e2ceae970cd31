package bootstrapper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

type Bootstrapper struct {
	esClient *elasticsearch.Client
	logger   *zap.Logger
}

func NewBootstrapper(esClient *elasticsearch.Client, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{
		esClient: esClient,
		logger:   logger,
	}
}

// WaitForElasticsearch polls the cluster until it answers or the retries run out.
func (bs *Bootstrapper) WaitForElasticsearch(maxRetries int, delay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		res, err := bs.esClient.Info()
		if err == nil {
			statusCode := res.StatusCode
			res.Body.Close()
			if statusCode == http.StatusOK {
				bs.logger.Info("Elasticsearch is available")
				return nil
			}
		}
		bs.logger.Warn(
			"Elasticsearch not available, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
		)

		time.Sleep(delay)
	}

	return fmt.Errorf("elasticsearch is not available after %d attempts", maxRetries)
}

// EnsureSpanIndex creates indexName with the Jaeger span mapping unless it exists.
// The query server never calls this; it only reads.
func (bs *Bootstrapper) EnsureSpanIndex(indexName string) error {
	res, err := bs.esClient.Indices.Exists([]string{indexName})
	if err != nil {
		return fmt.Errorf("error checking index %s: %w", indexName, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		bs.logger.Info("Span index already exists", zap.String("index_name", indexName))
		return nil
	case http.StatusNotFound:
		return bs.createIndex(indexName, spanIndex)
	default:
		return fmt.Errorf("unexpected status %d when checking index %s", res.StatusCode, indexName)
	}
}

func (bs *Bootstrapper) createIndex(indexName string, index map[string]interface{}) error {
	body, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("error marshaling index input during bootstrap: %w", err)
	}

	res, err := bs.esClient.Indices.Create(
		indexName,
		bs.esClient.Indices.Create.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return fmt.Errorf("error creating index during bootstrap %s: %w", indexName, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error response for index %s: %s", indexName, res.String())
	}

	bs.logger.Info("Successfully created index", zap.String("index_name", indexName))
	return nil
}
