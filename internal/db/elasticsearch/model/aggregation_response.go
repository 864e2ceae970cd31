package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// OperationPercentilesAggregation is a terms aggregation on operationName with a
// percentiles sub-aggregation on duration.
type OperationPercentilesAggregation struct {
	Buckets []OperationBucket `json:"buckets"`
}

type OperationBucket struct {
	Key                 string      `json:"key"`
	DocCount            int         `json:"doc_count"`
	LoadTimePercentiles Percentiles `json:"load_time_percentiles"`
}

// Percentiles accepts both the keyed ({"50.0": v}) and the array
// ([{"key": 50.0, "value": v}]) form of the percentiles aggregation.
type Percentiles struct {
	Values []PercentileValue
}

// PercentileValue holds a backend value in microseconds. Value is nil when the
// bucket had no durations to compute it from.
type PercentileValue struct {
	Percent float64  `json:"key"`
	Value   *float64 `json:"value"`
}

func (p *Percentiles) UnmarshalJSON(data []byte) error {
	var raw struct {
		Values json.RawMessage `json:"values"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode percentiles aggregation: %w", err)
	}
	p.Values = nil
	if len(raw.Values) == 0 || string(raw.Values) == "null" {
		return nil
	}

	if raw.Values[0] == '[' {
		var values []PercentileValue
		if err := json.Unmarshal(raw.Values, &values); err != nil {
			return fmt.Errorf("failed to decode percentile values: %w", err)
		}
		p.Values = values
		return nil
	}

	var keyed map[string]*float64
	if err := json.Unmarshal(raw.Values, &keyed); err != nil {
		// "50.0_as_string" entries carry strings and only appear with a format set
		var loose map[string]json.RawMessage
		if err := json.Unmarshal(raw.Values, &loose); err != nil {
			return fmt.Errorf("failed to decode percentile values: %w", err)
		}
		keyed = make(map[string]*float64, len(loose))
		for key, value := range loose {
			var number *float64
			if json.Unmarshal(value, &number) == nil {
				keyed[key] = number
			}
		}
	}
	for key, value := range keyed {
		percent, err := strconv.ParseFloat(key, 64)
		if err != nil {
			continue
		}
		p.Values = append(p.Values, PercentileValue{Percent: percent, Value: value})
	}
	sort.Slice(p.Values, func(i, j int) bool {
		return p.Values[i].Percent < p.Values[j].Percent
	})
	return nil
}
