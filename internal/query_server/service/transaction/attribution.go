package transaction

import (
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
	"github.com/shopspring/decimal"
)

// DeriveAttribution splits every transfer into the sender's debit followed by the
// receiver's credit.
func DeriveAttribution(events []model.TransactionEvent) []model.AttributionRecord {
	records := make([]model.AttributionRecord, 0, 2*len(events))
	for _, event := range events {
		records = append(
			records,
			model.AttributionRecord{
				UserId:           event.SenderCustomerId,
				AccountNumber:    event.SenderAccountId,
				TotalSpent:       event.Amount,
				TotalReceived:    decimal.Zero,
				TransactionCount: 1,
				Time:             event.Time,
				DurationMs:       event.DurationMs,
			},
			model.AttributionRecord{
				UserId:           event.ReceiverCustomerId,
				AccountNumber:    event.ReceiverAccountId,
				TotalSpent:       decimal.Zero,
				TotalReceived:    event.Amount,
				TransactionCount: 1,
				Time:             event.Time,
				DurationMs:       event.DurationMs,
			},
		)
	}
	return records
}
