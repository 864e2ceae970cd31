package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AttributionRecord is one side of a transfer: the sender's debit or the receiver's credit.
type AttributionRecord struct {
	UserId           string
	AccountNumber    string
	TotalSpent       decimal.Decimal
	TotalReceived    decimal.Decimal
	TransactionCount int
	Time             string
	DurationMs       float64
}

type ErrorRecord struct {
	OperationName string
	Payload       json.RawMessage
	DurationMs    float64
}

type BankErrorRecord struct {
	ErrorNo    int64
	Message    *string
	DurationMs float64
}

type LatencyRecord struct {
	DurationMs float64
}

// OperationPercentiles keeps the latency percentiles of one operation in request order.
type OperationPercentiles struct {
	OperationName string
	Percentiles   []PercentileEntry
}

// PercentileEntry is nil-valued when the backend could not compute the percentile.
type PercentileEntry struct {
	Label string
	Ms    *float64
}

type SlowOperation struct {
	OperationName string
	DurationMs    float64
}
