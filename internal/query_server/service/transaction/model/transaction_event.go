package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TransactionEvent is a transfer reconstructed from the response body a span carried.
type TransactionEvent struct {
	OperationName      string
	SenderCustomerId   string
	SenderAccountId    string
	ReceiverCustomerId string
	ReceiverAccountId  string
	Amount             decimal.Decimal
	Time               string
	DurationMs         float64
	ErrorNo            *int64
	Message            *string
	SenderBankId       *int64
	ReceiverBankId     *int64
	// Payload is the compacted response body, kept for diagnostics.
	Payload json.RawMessage
}
