package transaction

import (
	dbModel "github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
)

// SlowestLimit caps the slowest operations view.
const SlowestLimit = 5

// ListLatencies reports one duration per hit; the response body is never read.
func ListLatencies(hits []dbModel.Hit) []model.LatencyRecord {
	records := make([]model.LatencyRecord, 0, len(hits))
	for _, hit := range hits {
		records = append(records, model.LatencyRecord{
			DurationMs: durationOf(hit.Source) / microsecondsDivisor,
		})
	}
	return records
}

// RankSlowest takes the first n hits. The backend already sorted them by
// duration, descending, but may return more than n.
func RankSlowest(hits []dbModel.Hit, n int) []model.SlowOperation {
	if n < 0 {
		n = 0
	}
	if len(hits) < n {
		n = len(hits)
	}
	records := make([]model.SlowOperation, 0, n)
	for _, hit := range hits[:n] {
		records = append(records, model.SlowOperation{
			OperationName: operationNameOf(hit.Source),
			DurationMs:    durationOf(hit.Source) / microsecondsDivisor,
		})
	}
	return records
}
