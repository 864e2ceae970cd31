//go:build integration

package elasticsearch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/client"
	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/Avi18971911/TransferLens/internal/metrics"
	"github.com/Avi18971911/TransferLens/internal/query_server/router"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *client.SpanClientImpl) {
	if es == nil {
		t.Fatal("es is uninitialized or otherwise nil")
	}
	sc := client.NewSpanClientImpl(es, client.Immediate)
	ts := transaction.NewTransactionService(
		sc,
		transaction.Settings{
			SpanIndex:      spanIndex,
			ErrorSpanIndex: errorSpanIndex,
			Query: transaction.QueryParams{
				ServiceName:          serviceName,
				TransferOperation:    transferOperation,
				PercentileOperations: []string{transferOperation, feeOperation},
				PageSize:             1000,
			},
		},
		metrics.NewRecorder(),
		zap.NewNop(),
	)
	return router.CreateRouter(ts, metrics.NewRecorder(), zap.NewNop()), sc
}

func getJSON(t *testing.T, r http.Handler, path string, target interface{}) {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func TestTransactionViews(t *testing.T) {
	r, sc := newTestRouter(t)

	t.Run("should attribute transfers and skip malformed bodies", func(t *testing.T) {
		require.NoError(t, deleteAllDocuments(es))
		spans := []model.SpanDocument{
			span("1", transferOperation, 12000, responseBody(`{"SenderCustomerId":"c-1","SenderAccountId":"a-1","ReceiverCustomerId":"c-2","ReceiverAccountId":"a-2","Amount":250.5,"Time":"2024-07-22T10:00:00Z"}`)),
			span("2", transferOperation, 8000, responseBody(`{"SenderCustomerId": "c-`)),
			span("3", transferOperation, 5000, nil),
			span("4", feeOperation, 3000, responseBody(`{"Amount":1}`)),
		}
		require.NoError(t, loadSpansIntoElasticsearch(sc, spans, spanIndex))

		var records []map[string]interface{}
		getJSON(t, r, "/data", &records)

		require.Len(t, records, 2)
		assert.Equal(t, "c-1", records[0]["userId"])
		assert.Equal(t, 250.5, records[0]["total_spent"])
		assert.Equal(t, 0.0, records[0]["total_received"])
		assert.Equal(t, "c-2", records[1]["userId"])
		assert.Equal(t, 250.5, records[1]["total_received"])
		assert.Equal(t, 12.0, records[1]["duration_ms"])
	})

	t.Run("should list domain errors from the error index only", func(t *testing.T) {
		require.NoError(t, deleteAllDocuments(es))
		require.NoError(t, loadSpansIntoElasticsearch(sc, []model.SpanDocument{
			span("1", transferOperation, 4000, responseBody(`{"error_no":201,"message":"insufficient funds"}`)),
			span("2", feeOperation, 4000, responseBody(`{"error_no":404}`)),
		}, errorSpanIndex))
		require.NoError(t, loadSpansIntoElasticsearch(sc, []model.SpanDocument{
			span("3", transferOperation, 4000, responseBody(`{"error_no":201,"message":"wrong index"}`)),
		}, spanIndex))

		var records []map[string]interface{}
		getJSON(t, r, "/errors", &records)

		require.Len(t, records, 1)
		assert.Equal(t, transferOperation, records[0]["operationName"])
		assert.Equal(t, map[string]interface{}{"error_no": 201.0, "message": "insufficient funds"}, records[0]["response_body"])
		assert.Equal(t, 4.0, records[0]["duration_ms"])
	})

	t.Run("should scope errors to a bank", func(t *testing.T) {
		require.NoError(t, deleteAllDocuments(es))
		require.NoError(t, loadSpansIntoElasticsearch(sc, []model.SpanDocument{
			span("1", transferOperation, 2000, responseBody(`{"SenderBankId":42,"ReceiverBankId":7,"error_no":201,"message":"insufficient funds"}`)),
			span("2", transferOperation, 2000, responseBody(`{"SenderBankId":7,"ReceiverBankId":9,"error_no":201}`)),
			span("3", transferOperation, 2000, responseBody(`{"SenderBankId":9,"ReceiverBankId":42,"error_no":201}`)),
		}, spanIndex))

		var records []map[string]interface{}
		getJSON(t, r, "/errors/42", &records)

		require.Len(t, records, 2)
		messages := []interface{}{records[0]["message"], records[1]["message"]}
		assert.ElementsMatch(t, []interface{}{"insufficient funds", nil}, messages)
	})

	t.Run("should report latencies, percentiles and the slowest spans", func(t *testing.T) {
		require.NoError(t, deleteAllDocuments(es))
		spans := make([]model.SpanDocument, 0)
		for i, duration := range []int64{1000, 2000, 3000, 4000, 5000, 6000, 7000} {
			spans = append(spans, span(string(rune('a'+i)), transferOperation, duration, nil))
		}
		spans = append(spans, span("fee", feeOperation, 500, nil))
		require.NoError(t, loadSpansIntoElasticsearch(sc, spans, spanIndex))

		var latencies []map[string]float64
		getJSON(t, r, "/time", &latencies)
		assert.Len(t, latencies, 7)

		var slowest []map[string]interface{}
		getJSON(t, r, "/slowest", &slowest)
		require.Len(t, slowest, 5)
		assert.Equal(t, 7.0, slowest[0]["duration_ms"])
		assert.Equal(t, 3.0, slowest[4]["duration_ms"])

		var percentiles map[string]map[string]*float64
		getJSON(t, r, "/percentiles", &percentiles)
		require.Contains(t, percentiles, transferOperation)
		require.Contains(t, percentiles, feeOperation)
		for _, label := range []string{"50", "75", "90", "95", "99"} {
			require.NotNil(t, percentiles[transferOperation][label], label)
		}
		assert.Equal(t, 0.5, *percentiles[feeOperation]["50"])
		assert.LessOrEqual(t, *percentiles[transferOperation]["50"], *percentiles[transferOperation]["99"])
	})
}
