package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Avi18971911/TransferLens/internal/config"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/bootstrapper"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/client"
	"github.com/Avi18971911/TransferLens/internal/logging"
	"github.com/Avi18971911/TransferLens/internal/metrics"
	"github.com/Avi18971911/TransferLens/internal/query_server/router"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// @title TransferLens API
// @version 1.0
// @description Bank transfer analytics computed from Jaeger spans stored in Elasticsearch.

const shutdownTimeout = 10 * time.Second

func main() {
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

	sc := client.NewSpanClientImpl(es, client.Wait)
	recorder := metrics.NewRecorder()
	ts := transaction.NewTransactionService(
		sc,
		transaction.Settings{
			SpanIndex:      cfg.SpanIndex,
			ErrorSpanIndex: cfg.ErrorSpanIndex,
			Query: transaction.QueryParams{
				ServiceName:          cfg.ServiceName,
				TransferOperation:    cfg.TransferOperation,
				PercentileOperations: cfg.PercentileOperations,
				PageSize:             cfg.PageSize,
			},
			QueryTimeout: cfg.QueryTimeout,
		},
		recorder,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.CreateRouter(ts, recorder, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting query server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down query server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Query server shutdown failed", zap.Error(err))
	}
}
