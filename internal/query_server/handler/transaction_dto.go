package handler

import (
	"bytes"
	"encoding/json"
)

// AttributionRecordDTO is one side of a transfer: the sender's debit or the receiver's credit
// @swagger:model AttributionRecordDTO
type AttributionRecordDTO struct {
	// The customer that sent or received the amount
	UserId string `json:"userId"`
	// The account the amount left or entered
	AccountNumber string `json:"accountNumber"`
	// The amount sent, zero for a credit
	TotalSpent json.Number `json:"total_spent"`
	// The amount received, zero for a debit
	TotalReceived json.Number `json:"total_received"`
	// Always 1
	TransactionCount int `json:"transaction_count"`
	// The transfer time as reported by the bank
	Time string `json:"time"`
	// The span duration
	DurationMs float64 `json:"duration_ms"`
}

// ErrorRecordDTO is a span whose response reported a domain error
// @swagger:model ErrorRecordDTO
type ErrorRecordDTO struct {
	OperationName string `json:"operationName"`
	// The full response body of the span
	ResponseBody json.RawMessage `json:"response_body"`
	DurationMs   float64         `json:"duration_ms"`
}

// BankErrorRecordDTO is a domain error involving a given bank
// @swagger:model BankErrorRecordDTO
type BankErrorRecordDTO struct {
	ErrorNo int64 `json:"error_no"`
	// Null when the response carried no message
	Message    *string `json:"message"`
	DurationMs float64 `json:"duration_ms"`
}

// LatencyRecordDTO is the duration of a single transfer span
// @swagger:model LatencyRecordDTO
type LatencyRecordDTO struct {
	DurationMs float64 `json:"duration_ms"`
}

// SlowOperationDTO is one of the slowest spans of the service
// @swagger:model SlowOperationDTO
type SlowOperationDTO struct {
	OperationName string  `json:"operationName"`
	DurationMs    float64 `json:"duration_ms"`
}

// PercentilesResponseDTO maps each operation name to its latency percentiles.
// Operations keep the backend bucket order and labels keep the requested order.
// @swagger:model PercentilesResponseDTO
type PercentilesResponseDTO struct {
	Operations []OperationPercentilesDTO
}

type OperationPercentilesDTO struct {
	OperationName string
	Percentiles   []PercentileDTO
}

type PercentileDTO struct {
	// The percentile label, e.g. "95"
	Label string
	// Null when the backend had no value for the percentile
	Ms *float64
}

func (p PercentilesResponseDTO) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, operation := range p.Operations {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, operation.OperationName, operation.percentilesJSON); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o OperationPercentilesDTO) percentilesJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, percentile := range o.Percentiles {
		if i > 0 {
			buf.WriteByte(',')
		}
		value := percentile.Ms
		err := writeMember(buf, percentile.Label, func(buf *bytes.Buffer) error {
			encoded, err := json.Marshal(value)
			if err != nil {
				return err
			}
			buf.Write(encoded)
			return nil
		})
		if err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeMember(buf *bytes.Buffer, key string, writeValue func(*bytes.Buffer) error) error {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encodedKey)
	buf.WriteByte(':')
	return writeValue(buf)
}
