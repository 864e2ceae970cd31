package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Avi18971911/TransferLens/internal/config"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/bootstrapper"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/client"
	"github.com/Avi18971911/TransferLens/internal/logging"
	"github.com/Avi18971911/TransferLens/internal/seed"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	count := flag.Int("count", 5000, "spans to generate per index")
	batchSize := flag.Int("batch", 500, "documents per bulk request")
	workers := flag.Int("workers", 4, "concurrent bulk requests")
	randomSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	errorRatio := flag.Float64("error-ratio", 0.1, "share of transfers answered with a domain error")
	malformedRatio := flag.Float64("malformed-ratio", 0.02, "share of transfers with an unparseable body")
	otherRatio := flag.Float64("other-ratio", 0.3, "share of spans of other operations")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.ElasticsearchAddresses,
		Username:  cfg.ElasticsearchUsername,
		Password:  cfg.ElasticsearchPassword,
	})
	if err != nil {
		logger.Fatal("Failed to create elasticsearch client", zap.Error(err))
	}

	bs := bootstrapper.NewBootstrapper(es, logger)
	if err := bs.WaitForElasticsearch(cfg.ElasticsearchWaitRetries, cfg.ElasticsearchWaitDelay); err != nil {
		logger.Fatal("Elasticsearch never became available", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sc := client.NewSpanClientImpl(es, client.Async)
	indices := []string{cfg.SpanIndex}
	if cfg.ErrorSpanIndex != cfg.SpanIndex {
		indices = append(indices, cfg.ErrorSpanIndex)
	}

	for i, index := range indices {
		if err := bs.EnsureSpanIndex(index); err != nil {
			logger.Fatal("Failed to create span index", zap.String("index", index), zap.Error(err))
		}

		generator := seed.NewGenerator(*randomSeed+int64(i), seed.Options{
			ServiceName:       cfg.ServiceName,
			TransferOperation: cfg.TransferOperation,
			OtherOperations:   otherOperations(cfg),
			BankIds:           []int64{7, 9, 42, 101},
			ErrorRatio:        *errorRatio,
			MalformedRatio:    *malformedRatio,
			OtherRatio:        *otherRatio,
			Start:             time.Now().Add(-time.Duration(*count) * time.Second),
		})
		spans, err := generator.Spans(*count)
		if err != nil {
			logger.Fatal("Failed to generate spans", zap.Error(err))
		}
		documents, err := client.ToDocumentMaps(spans)
		if err != nil {
			logger.Fatal("Failed to convert spans to documents", zap.Error(err))
		}

		if err := bulkIndex(ctx, sc, documents, index, *batchSize, *workers); err != nil {
			logger.Fatal("Failed to index spans", zap.String("index", index), zap.Error(err))
		}
		logger.Info("Seeded span index", zap.String("index", index), zap.Int("spans", len(documents)))
	}
}

func bulkIndex(
	ctx context.Context,
	writer client.SpanWriter,
	documents []client.DocumentMap,
	index string,
	batchSize int,
	workers int,
) error {
	if batchSize <= 0 {
		batchSize = len(documents)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for start := 0; start < len(documents); start += batchSize {
		batch := documents[start:min(start+batchSize, len(documents))]
		g.Go(func() error {
			return writer.BulkIndex(gctx, batch, index)
		})
	}
	return g.Wait()
}

// otherOperations are the non-transfer operations of the percentile allow-list.
func otherOperations(cfg *config.Config) []string {
	operations := make([]string, 0, len(cfg.PercentileOperations))
	for _, operation := range cfg.PercentileOperations {
		if operation != cfg.TransferOperation {
			operations = append(operations, operation)
		}
	}
	return operations
}
