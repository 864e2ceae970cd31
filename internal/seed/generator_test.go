package seed

import (
	"testing"
	"time"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/client"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOptions = Options{
	ServiceName:       "dotnet-bank-api",
	TransferOperation: "POST Transactions/Transfer",
	OtherOperations:   []string{"POST /api/v1/transactions/fee"},
	BankIds:           []int64{7, 42},
	Start:             time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC),
}

func responseBody(t *testing.T, span model.SpanDocument) string {
	for _, tag := range span.Tags {
		if tag.Key == transaction.ResponseBodyTagKey {
			return tag.Value
		}
	}
	t.Fatalf("span %s has no response body", span.SpanID)
	return ""
}

func TestGenerator(t *testing.T) {
	t.Run("should be deterministic for a seed", func(t *testing.T) {
		first, err := NewGenerator(7, testOptions).Spans(20)
		require.NoError(t, err)
		second, err := NewGenerator(7, testOptions).Spans(20)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("should emit parseable transfers", func(t *testing.T) {
		spans, err := NewGenerator(1, testOptions).Spans(10)
		require.NoError(t, err)

		require.Len(t, spans, 10)
		for _, span := range spans {
			assert.Equal(t, "POST Transactions/Transfer", span.OperationName)
			assert.Equal(t, "dotnet-bank-api", span.Process.ServiceName)
			assert.Len(t, span.TraceID, 32)
			assert.Len(t, span.SpanID, 16)
			assert.Positive(t, span.Duration)

			outcome := transaction.ParsePayload(span.OperationName, responseBody(t, span), float64(span.Duration))
			require.False(t, outcome.Skipped())
			assert.True(t, outcome.Event.Amount.IsPositive())
			assert.NotEqual(t, "Unknown", outcome.Event.SenderCustomerId)
			assert.Contains(t, []int64{7, 42}, *outcome.Event.SenderBankId)
		}
	})

	t.Run("should emit documents the tag extractor can read", func(t *testing.T) {
		spans, err := NewGenerator(3, testOptions).Spans(5)
		require.NoError(t, err)
		documents, err := client.ToDocumentMaps(spans)
		require.NoError(t, err)

		for i, document := range documents {
			body, durationUs, found := transaction.ExtractResponseBody(document)
			require.True(t, found)
			assert.Equal(t, responseBody(t, spans[i]), body)
			assert.Equal(t, float64(spans[i].Duration), durationUs)
		}
	})

	t.Run("should emit domain errors", func(t *testing.T) {
		opts := testOptions
		opts.ErrorRatio = 1
		spans, err := NewGenerator(1, opts).Spans(5)
		require.NoError(t, err)

		for _, span := range spans {
			outcome := transaction.ParsePayload(span.OperationName, responseBody(t, span), float64(span.Duration))
			require.False(t, outcome.Skipped())
			assert.Equal(t, int64(transaction.DomainErrorCode), *outcome.Event.ErrorNo)
			assert.Equal(t, InsufficientFundsMsg, *outcome.Event.Message)
		}
	})

	t.Run("should emit malformed bodies", func(t *testing.T) {
		opts := testOptions
		opts.MalformedRatio = 1
		spans, err := NewGenerator(1, opts).Spans(5)
		require.NoError(t, err)

		for _, span := range spans {
			outcome := transaction.ParsePayload(span.OperationName, responseBody(t, span), float64(span.Duration))
			assert.True(t, outcome.Skipped())
		}
	})

	t.Run("should emit other operations", func(t *testing.T) {
		opts := testOptions
		opts.OtherRatio = 1
		spans, err := NewGenerator(1, opts).Spans(5)
		require.NoError(t, err)

		for _, span := range spans {
			assert.Equal(t, "POST /api/v1/transactions/fee", span.OperationName)
		}
	})
}
