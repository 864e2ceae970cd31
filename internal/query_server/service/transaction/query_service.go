package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/client"
	dbModel "github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/Avi18971911/TransferLens/internal/metrics"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
	"go.uber.org/zap"
)

type TransactionQueryService interface {
	GetAttribution(ctx context.Context) ([]model.AttributionRecord, error)
	GetErrors(ctx context.Context) ([]model.ErrorRecord, error)
	GetBankErrors(ctx context.Context, bankId int64) ([]model.BankErrorRecord, error)
	GetLatencies(ctx context.Context) ([]model.LatencyRecord, error)
	GetPercentiles(ctx context.Context) ([]model.OperationPercentiles, error)
	GetSlowest(ctx context.Context) ([]model.SlowOperation, error)
}

type Settings struct {
	// SpanIndex serves every view but the all-errors one, which reads ErrorSpanIndex.
	SpanIndex      string
	ErrorSpanIndex string
	Query          QueryParams
	// QueryTimeout bounds each backend call when positive.
	QueryTimeout time.Duration
}

type TransactionService struct {
	searcher client.SpanSearcher
	settings Settings
	metrics  *metrics.Recorder
	logger   *zap.Logger
}

func NewTransactionService(
	searcher client.SpanSearcher,
	settings Settings,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		searcher: searcher,
		settings: settings,
		metrics:  recorder,
		logger:   logger,
	}
}

func (ts *TransactionService) GetAttribution(ctx context.Context) ([]model.AttributionRecord, error) {
	res, err := ts.search(ctx, ViewTransfers, ts.settings.SpanIndex)
	if err != nil {
		return nil, err
	}
	records := DeriveAttribution(ts.parseEvents(ViewTransfers, res.Hits))
	ts.metrics.RecordsEmitted(string(ViewTransfers), len(records))
	return records, nil
}

func (ts *TransactionService) GetErrors(ctx context.Context) ([]model.ErrorRecord, error) {
	res, err := ts.search(ctx, ViewErrors, ts.settings.ErrorSpanIndex)
	if err != nil {
		return nil, err
	}
	records := CollectErrors(ts.parseEvents(ViewErrors, res.Hits))
	ts.metrics.RecordsEmitted(string(ViewErrors), len(records))
	return records, nil
}

func (ts *TransactionService) GetBankErrors(ctx context.Context, bankId int64) ([]model.BankErrorRecord, error) {
	res, err := ts.search(ctx, ViewBankErrors, ts.settings.SpanIndex)
	if err != nil {
		return nil, err
	}
	records := FilterBankErrors(ts.parseEvents(ViewBankErrors, res.Hits), bankId)
	ts.metrics.RecordsEmitted(string(ViewBankErrors), len(records))
	return records, nil
}

func (ts *TransactionService) GetLatencies(ctx context.Context) ([]model.LatencyRecord, error) {
	res, err := ts.search(ctx, ViewLatency, ts.settings.SpanIndex)
	if err != nil {
		return nil, err
	}
	records := ListLatencies(res.Hits)
	ts.metrics.RecordsEmitted(string(ViewLatency), len(records))
	return records, nil
}

func (ts *TransactionService) GetPercentiles(ctx context.Context) ([]model.OperationPercentiles, error) {
	res, err := ts.search(ctx, ViewPercentiles, ts.settings.SpanIndex)
	if err != nil {
		return nil, err
	}
	var aggregation dbModel.OperationPercentilesAggregation
	if raw, ok := res.Aggregations[operationAggregationName]; ok {
		if err := json.Unmarshal(raw, &aggregation); err != nil {
			ts.logger.Error("Error when decoding percentile aggregation", zap.Error(err))
			return nil, fmt.Errorf("failed to decode %s aggregation: %w", operationAggregationName, err)
		}
	}
	records := AggregatePercentiles(aggregation)
	ts.metrics.RecordsEmitted(string(ViewPercentiles), len(records))
	return records, nil
}

func (ts *TransactionService) GetSlowest(ctx context.Context) ([]model.SlowOperation, error) {
	res, err := ts.search(ctx, ViewSlowest, ts.settings.SpanIndex)
	if err != nil {
		return nil, err
	}
	records := RankSlowest(res.Hits, SlowestLimit)
	ts.metrics.RecordsEmitted(string(ViewSlowest), len(records))
	return records, nil
}

func (ts *TransactionService) search(
	ctx context.Context,
	view View,
	index string,
) (*dbModel.SearchResult, error) {
	query, err := BuildQuery(view, ts.settings.Query)
	if err != nil {
		ts.logger.Error("Error when building query", zap.String("view", string(view)), zap.Error(err))
		return nil, err
	}
	queryJson, err := json.Marshal(query)
	if err != nil {
		ts.logger.Error("Error when marshalling query to JSON", zap.Error(err))
		return nil, err
	}

	queryCtx := ctx
	if ts.settings.QueryTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, ts.settings.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := ts.searcher.Search(queryCtx, string(queryJson), []string{index}, nil)
	ts.metrics.ObserveBackendQuery(string(view), time.Since(start))
	if err != nil {
		ts.logger.Error(
			"Error when searching for spans",
			zap.String("view", string(view)),
			zap.String("index", index),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to search spans for %s: %w", view, err)
	}
	return res, nil
}

// parseEvents turns hits into events. Hits without a response body tag are
// dropped quietly; malformed bodies are logged, counted and dropped.
func (ts *TransactionService) parseEvents(view View, hits []dbModel.Hit) []model.TransactionEvent {
	events := make([]model.TransactionEvent, 0, len(hits))
	for _, hit := range hits {
		raw, durationUs, found := ExtractResponseBody(hit.Source)
		if !found {
			continue
		}
		outcome := ParsePayload(operationNameOf(hit.Source), raw, durationUs)
		if outcome.Skipped() {
			ts.logger.Warn(
				"Skipping span with malformed response body",
				zap.String("view", string(view)),
				zap.String("span_document_id", hit.ID),
				zap.String("value", raw),
				zap.String("reason", outcome.SkipReason),
			)
			ts.metrics.PayloadSkipped(string(view))
			continue
		}
		events = append(events, *outcome.Event)
	}
	return events
}
