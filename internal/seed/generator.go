// Package seed generates synthetic Jaeger span documents of a bank API, for
// local demos and integration tests.
package seed

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/Avi18971911/TransferLens/internal/db/elasticsearch/model"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const InsufficientFundsMsg = "insufficient funds"

type Options struct {
	ServiceName       string
	TransferOperation string
	// OtherOperations are emitted without a transfer payload.
	OtherOperations []string
	BankIds         []int64
	// ErrorRatio and MalformedRatio are the shares of transfer spans answered with
	// a domain error and with an unparseable body.
	ErrorRatio     float64
	MalformedRatio float64
	// OtherRatio is the share of all spans that are not transfers.
	OtherRatio float64
	Start      time.Time
}

type Generator struct {
	rng  *rand.Rand
	opts Options
}

// NewGenerator returns a generator whose output depends only on seed and opts.
func NewGenerator(seed int64, opts Options) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		opts: opts,
	}
}

type transferResponse struct {
	SenderCustomerId   string      `json:"SenderCustomerId"`
	SenderAccountId    string      `json:"SenderAccountId"`
	ReceiverCustomerId string      `json:"ReceiverCustomerId"`
	ReceiverAccountId  string      `json:"ReceiverAccountId"`
	Amount             json.Number `json:"Amount"`
	Time               string      `json:"Time"`
	SenderBankId       int64       `json:"SenderBankId"`
	ReceiverBankId     int64       `json:"ReceiverBankId"`
}

type errorResponse struct {
	ErrorNo        int    `json:"error_no"`
	Message        string `json:"message"`
	SenderBankId   int64  `json:"SenderBankId"`
	ReceiverBankId int64  `json:"ReceiverBankId"`
}

func (g *Generator) Spans(count int) ([]model.SpanDocument, error) {
	spans := make([]model.SpanDocument, 0, count)
	for i := 0; i < count; i++ {
		span, err := g.span(i)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

func (g *Generator) span(i int) (model.SpanDocument, error) {
	start := g.opts.Start.Add(time.Duration(i) * time.Second)
	durationUs := int64(500 + g.rng.Intn(250_000))

	traceID, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return model.SpanDocument{}, fmt.Errorf("failed to generate trace id: %w", err)
	}
	spanBytes := make([]byte, 8)
	g.rng.Read(spanBytes)

	span := model.SpanDocument{
		TraceID:         hex.EncodeToString(traceID[:]),
		SpanID:          hex.EncodeToString(spanBytes),
		StartTime:       start.UnixMicro(),
		StartTimeMillis: start.UnixMilli(),
		Duration:        durationUs,
		Process:         model.Process{ServiceName: g.opts.ServiceName},
	}

	if len(g.opts.OtherOperations) > 0 && g.rng.Float64() < g.opts.OtherRatio {
		span.OperationName = g.opts.OtherOperations[g.rng.Intn(len(g.opts.OtherOperations))]
		span.Tags = httpTags("200", `{"status":"ok"}`)
		return span, nil
	}

	span.OperationName = g.opts.TransferOperation
	roll := g.rng.Float64()
	switch {
	case roll < g.opts.MalformedRatio:
		span.Tags = httpTags("200", `{"SenderCustomerId": "c-`)
	case roll < g.opts.MalformedRatio+g.opts.ErrorRatio:
		sender, receiver := g.bankPair()
		body, err := json.Marshal(errorResponse{
			ErrorNo:        transaction.DomainErrorCode,
			Message:        InsufficientFundsMsg,
			SenderBankId:   sender,
			ReceiverBankId: receiver,
		})
		if err != nil {
			return model.SpanDocument{}, fmt.Errorf("failed to marshal error response: %w", err)
		}
		span.Tags = httpTags("400", string(body))
	default:
		body, err := json.Marshal(g.transfer(start))
		if err != nil {
			return model.SpanDocument{}, fmt.Errorf("failed to marshal transfer response: %w", err)
		}
		span.Tags = httpTags("200", string(body))
	}
	return span, nil
}

func (g *Generator) transfer(at time.Time) transferResponse {
	sender, receiver := g.bankPair()
	amount := decimal.New(int64(1+g.rng.Intn(1_000_000)), -2)
	return transferResponse{
		SenderCustomerId:   fmt.Sprintf("customer-%d", g.rng.Intn(50)),
		SenderAccountId:    fmt.Sprintf("ACC%08d", g.rng.Intn(100_000_000)),
		ReceiverCustomerId: fmt.Sprintf("customer-%d", g.rng.Intn(50)),
		ReceiverAccountId:  fmt.Sprintf("ACC%08d", g.rng.Intn(100_000_000)),
		Amount:             json.Number(amount.String()),
		Time:               at.UTC().Format(time.RFC3339),
		SenderBankId:       sender,
		ReceiverBankId:     receiver,
	}
}

func (g *Generator) bankPair() (int64, int64) {
	if len(g.opts.BankIds) == 0 {
		return 0, 0
	}
	return g.opts.BankIds[g.rng.Intn(len(g.opts.BankIds))], g.opts.BankIds[g.rng.Intn(len(g.opts.BankIds))]
}

func httpTags(statusCode string, body string) []model.KeyValue {
	return []model.KeyValue{
		{Key: "http.method", Type: "string", Value: "POST"},
		{Key: "http.status_code", Type: "string", Value: statusCode},
		{Key: transaction.ResponseBodyTagKey, Type: "string", Value: body},
	}
}
