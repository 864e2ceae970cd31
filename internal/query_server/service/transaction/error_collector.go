package transaction

import "github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"

// DomainErrorCode marks a failure reported by the bank itself rather than by transport.
const DomainErrorCode = 201

func CollectErrors(events []model.TransactionEvent) []model.ErrorRecord {
	records := make([]model.ErrorRecord, 0)
	for _, event := range events {
		if !isDomainError(event) {
			continue
		}
		records = append(records, model.ErrorRecord{
			OperationName: event.OperationName,
			Payload:       event.Payload,
			DurationMs:    event.DurationMs,
		})
	}
	return records
}

// FilterBankErrors keeps domain errors where bankId is the sender or the receiver bank.
func FilterBankErrors(events []model.TransactionEvent, bankId int64) []model.BankErrorRecord {
	records := make([]model.BankErrorRecord, 0)
	for _, event := range events {
		if !isDomainError(event) || !involvesBank(event, bankId) {
			continue
		}
		records = append(records, model.BankErrorRecord{
			ErrorNo:    *event.ErrorNo,
			Message:    event.Message,
			DurationMs: event.DurationMs,
		})
	}
	return records
}

func isDomainError(event model.TransactionEvent) bool {
	return event.ErrorNo != nil && *event.ErrorNo == DomainErrorCode
}

func involvesBank(event model.TransactionEvent, bankId int64) bool {
	return (event.SenderBankId != nil && *event.SenderBankId == bankId) ||
		(event.ReceiverBankId != nil && *event.ReceiverBankId == bankId)
}
