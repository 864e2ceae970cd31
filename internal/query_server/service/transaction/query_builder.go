package transaction

import (
	"errors"
	"fmt"
)

// View identifies one analytic view and the query shape behind it.
type View string

const (
	ViewTransfers   View = "transfers"
	ViewErrors      View = "errors"
	ViewBankErrors  View = "bank_errors"
	ViewLatency     View = "latency"
	ViewPercentiles View = "percentiles"
	ViewSlowest     View = "slowest"
)

const (
	operationAggregationName   = "by_operation"
	percentilesAggregationName = "load_time_percentiles"
	// minOperationBuckets is raised to the allow-list length when that is longer.
	minOperationBuckets        = 10
)

var requestedPercents = []float64{50, 75, 90, 95, 99}

var (
	tagSourceFields      = []string{"operationName", "tags", "duration"}
	durationSourceFields = []string{"operationName", "duration"}
)

var ErrInvalidView = errors.New("invalid view")

// QueryParams are the knobs shared by every view query. Hits beyond PageSize
// are never fetched, so larger result sets undercount.
type QueryParams struct {
	ServiceName          string
	TransferOperation    string
	PercentileOperations []string
	PageSize             int
}

func BuildQuery(view View, params QueryParams) (map[string]interface{}, error) {
	switch view {
	case ViewTransfers, ViewBankErrors:
		return buildTransferResponsesQuery(params), nil
	case ViewErrors:
		return buildServiceResponsesQuery(params), nil
	case ViewLatency:
		return buildTransferDurationsQuery(params), nil
	case ViewPercentiles:
		return buildOperationPercentilesQuery(params), nil
	case ViewSlowest:
		return buildSlowestSpansQuery(params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
}

func buildTransferResponsesQuery(params QueryParams) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					matchClause("operationName", params.TransferOperation),
					matchClause("process.serviceName", params.ServiceName),
					responseBodyTagClause(),
				},
			},
		},
		"_source": tagSourceFields,
		"from":    0,
		"size":    params.PageSize,
	}
}

func buildServiceResponsesQuery(params QueryParams) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					matchClause("process.serviceName", params.ServiceName),
					responseBodyTagClause(),
				},
			},
		},
		"_source": tagSourceFields,
		"from":    0,
		"size":    params.PageSize,
	}
}

func buildTransferDurationsQuery(params QueryParams) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					matchClause("operationName", params.TransferOperation),
					matchClause("process.serviceName", params.ServiceName),
				},
			},
		},
		"_source": durationSourceFields,
		"from":    0,
		"size":    params.PageSize,
	}
}

func buildOperationPercentilesQuery(params QueryParams) map[string]interface{} {
	operations := params.PercentileOperations
	if operations == nil {
		operations = []string{}
	}
	return map[string]interface{}{
		"size": 0,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{
						"terms": map[string]interface{}{
							"operationName": operations,
						},
					},
				},
			},
		},
		"aggs": map[string]interface{}{
			operationAggregationName: map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "operationName",
					"size":  max(len(operations), minOperationBuckets),
				},
				"aggs": map[string]interface{}{
					percentilesAggregationName: map[string]interface{}{
						"percentiles": map[string]interface{}{
							"field":    "duration",
							"percents": requestedPercents,
						},
					},
				},
			},
		},
	}
}

func buildSlowestSpansQuery(params QueryParams) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					matchClause("process.serviceName", params.ServiceName),
				},
			},
		},
		"_source": durationSourceFields,
		"from":    0,
		"size":    params.PageSize,
		"sort": []map[string]interface{}{
			{
				"duration": map[string]interface{}{
					"order": "desc",
				},
			},
		},
	}
}

func matchClause(field string, value string) map[string]interface{} {
	return map[string]interface{}{
		"match": map[string]interface{}{
			field: value,
		},
	}
}

// responseBodyTagClause keeps only spans that carry a response body tag.
func responseBodyTagClause() map[string]interface{} {
	return map[string]interface{}{
		"nested": map[string]interface{}{
			"path": "tags",
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						matchClause("tags.key", ResponseBodyTagKey),
					},
				},
			},
		},
	}
}
