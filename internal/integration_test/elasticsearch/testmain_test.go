//go:build integration

package elasticsearch

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/bootstrapper"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

var es *elasticsearch.Client

func TestMain(m *testing.M) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	uri, cleanup, err := startElasticSearchContainer(context.Background(), logger)
	if err != nil {
		logger.Fatal("Failed to start container", zap.Error(err))
	}

	es, err = elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{uri}})
	if err != nil {
		cleanup()
		logger.Fatal("Failed to create elasticsearch client", zap.Error(err))
	}

	bs := bootstrapper.NewBootstrapper(es, logger)
	if err := bs.WaitForElasticsearch(30, time.Second); err != nil {
		cleanup()
		logger.Fatal("Elasticsearch never became available", zap.Error(err))
	}
	for _, index := range []string{spanIndex, errorSpanIndex} {
		if err := bs.EnsureSpanIndex(index); err != nil {
			cleanup()
			logger.Fatal("Failed to create span index", zap.String("index", index), zap.Error(err))
		}
	}

	code := m.Run()
	cleanup()
	os.Exit(code)
}
