package transaction

import (
	"strconv"

	dbModel "github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
)

// AggregatePercentiles converts backend percentile buckets, one per operation and
// in bucket order, into the requested percentiles in milliseconds.
func AggregatePercentiles(aggregation dbModel.OperationPercentilesAggregation) []model.OperationPercentiles {
	operations := make([]model.OperationPercentiles, 0, len(aggregation.Buckets))
	for _, bucket := range aggregation.Buckets {
		values := make(map[float64]*float64, len(bucket.LoadTimePercentiles.Values))
		for _, value := range bucket.LoadTimePercentiles.Values {
			values[value.Percent] = value.Value
		}

		entries := make([]model.PercentileEntry, 0, len(requestedPercents))
		for _, percent := range requestedPercents {
			entry := model.PercentileEntry{Label: percentLabel(percent)}
			if value := values[percent]; value != nil {
				ms := *value / microsecondsDivisor
				entry.Ms = &ms
			}
			entries = append(entries, entry)
		}
		operations = append(operations, model.OperationPercentiles{
			OperationName: bucket.Key,
			Percentiles:   entries,
		})
	}
	return operations
}

// percentLabel renders 50.0 as "50" and 99.9 as "99.9".
func percentLabel(percent float64) string {
	return strconv.FormatFloat(percent, 'f', -1, 64)
}
