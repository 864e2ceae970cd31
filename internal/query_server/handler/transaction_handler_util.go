package handler

import (
	"encoding/json"
	"errors"

	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
)

var (
	ErrNoBankId      = errors.New("no bank ID provided")
	ErrInvalidBankId = errors.New("bank ID is not a valid integer")
)

func mapAttributionRecordsToDTO(records []model.AttributionRecord) []AttributionRecordDTO {
	dto := make([]AttributionRecordDTO, len(records))
	for i, record := range records {
		dto[i] = AttributionRecordDTO{
			UserId:           record.UserId,
			AccountNumber:    record.AccountNumber,
			TotalSpent:       json.Number(record.TotalSpent.String()),
			TotalReceived:    json.Number(record.TotalReceived.String()),
			TransactionCount: record.TransactionCount,
			Time:             record.Time,
			DurationMs:       record.DurationMs,
		}
	}
	return dto
}

func mapErrorRecordsToDTO(records []model.ErrorRecord) []ErrorRecordDTO {
	dto := make([]ErrorRecordDTO, len(records))
	for i, record := range records {
		dto[i] = ErrorRecordDTO{
			OperationName: record.OperationName,
			ResponseBody:  record.Payload,
			DurationMs:    record.DurationMs,
		}
	}
	return dto
}

func mapBankErrorRecordsToDTO(records []model.BankErrorRecord) []BankErrorRecordDTO {
	dto := make([]BankErrorRecordDTO, len(records))
	for i, record := range records {
		dto[i] = BankErrorRecordDTO{
			ErrorNo:    record.ErrorNo,
			Message:    record.Message,
			DurationMs: record.DurationMs,
		}
	}
	return dto
}

func mapLatencyRecordsToDTO(records []model.LatencyRecord) []LatencyRecordDTO {
	dto := make([]LatencyRecordDTO, len(records))
	for i, record := range records {
		dto[i] = LatencyRecordDTO{DurationMs: record.DurationMs}
	}
	return dto
}

func mapOperationPercentilesToDTO(operations []model.OperationPercentiles) PercentilesResponseDTO {
	dto := make([]OperationPercentilesDTO, len(operations))
	for i, operation := range operations {
		percentiles := make([]PercentileDTO, len(operation.Percentiles))
		for j, entry := range operation.Percentiles {
			percentiles[j] = PercentileDTO{Label: entry.Label, Ms: entry.Ms}
		}
		dto[i] = OperationPercentilesDTO{
			OperationName: operation.OperationName,
			Percentiles:   percentiles,
		}
	}
	return PercentilesResponseDTO{Operations: dto}
}

func mapSlowOperationsToDTO(operations []model.SlowOperation) []SlowOperationDTO {
	dto := make([]SlowOperationDTO, len(operations))
	for i, operation := range operations {
		dto[i] = SlowOperationDTO{
			OperationName: operation.OperationName,
			DurationMs:    operation.DurationMs,
		}
	}
	return dto
}
