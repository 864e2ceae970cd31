//go:build integration

package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/client"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	spanIndex      = "jaeger-span-test"
	errorSpanIndex = "jaeger-span-test-errors"

	serviceName       = "dotnet-bank-api"
	transferOperation = "POST Transactions/Transfer"
	feeOperation      = "POST /api/v1/transactions/fee"
)

func loadSpansIntoElasticsearch(writer client.SpanWriter, spans []model.SpanDocument, index string) error {
	documents, err := client.ToDocumentMaps(spans)
	if err != nil {
		return fmt.Errorf("failed to convert spans to documents: %w", err)
	}
	return writer.BulkIndex(context.Background(), documents, index)
}

func deleteAllDocuments(es *elasticsearch.Client) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
	}
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return err
	}
	res, err := es.DeleteByQuery(
		[]string{spanIndex, errorSpanIndex},
		bytes.NewReader(queryJSON),
		es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("failed to delete documents by query: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to delete documents: %s", res.String())
	}
	return nil
}

func span(id string, operationName string, durationUs int64, body *string) model.SpanDocument {
	tags := []model.KeyValue{{Key: "http.method", Type: "string", Value: "POST"}}
	if body != nil {
		tags = append(tags, model.KeyValue{Key: "http.response.body", Type: "string", Value: *body})
	}
	return model.SpanDocument{
		TraceID:         "trace-" + id,
		SpanID:          id,
		OperationName:   operationName,
		StartTime:       1721642400000000,
		StartTimeMillis: 1721642400000,
		Duration:        durationUs,
		Tags:            tags,
		Process:         model.Process{ServiceName: serviceName},
	}
}

func responseBody(s string) *string { return &s }
