package handler

import (
	"net/http"
	"strconv"

	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TransferDataHandler creates a handler for the per-account spend and receipt view.
// @Summary Get the debit and credit of every transfer.
// @Tags transactions
// @Produce json
// @Success 200 {array} AttributionRecordDTO "Sender debit followed by receiver credit, per transfer"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /data [get]
func TransferDataHandler(s transaction.TransactionQueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logRequest(r, "Received Transfer Data Handler", logger)
		records, err := s.GetAttribution(r.Context())
		if err != nil {
			logger.Error("Error encountered when getting transfer attribution", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		writeJSON(w, mapAttributionRecordsToDTO(records), logger)
	}
}

// ErrorsHandler creates a handler listing every domain error of the service.
// @Summary Get spans whose response reported a domain error.
// @Tags transactions
// @Produce json
// @Success 200 {array} ErrorRecordDTO "Operation, full response body and duration per error"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /errors [get]
func ErrorsHandler(s transaction.TransactionQueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logRequest(r, "Received Errors Handler", logger)
		records, err := s.GetErrors(r.Context())
		if err != nil {
			logger.Error("Error encountered when getting errors", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		writeJSON(w, mapErrorRecordsToDTO(records), logger)
	}
}

// BankErrorsHandler creates a handler listing the domain errors where a bank was
// the sender or the receiver.
// @Summary Get domain errors involving a bank.
// @Tags transactions
// @Produce json
// @Param bankId path int true "The bank ID"
// @Success 200 {array} BankErrorRecordDTO "Error code, message and duration per error"
// @Failure 400 {object} ErrorMessage "Invalid bank ID"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /errors/{bankId} [get]
func BankErrorsHandler(s transaction.TransactionQueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logRequest(r, "Received Bank Errors Handler", logger)
		bankId, err := parseBankId(r)
		if err != nil {
			logger.Error("Error encountered when validating request", zap.Error(err))
			HttpError(w, err.Error(), http.StatusBadRequest, logger)
			return
		}
		records, err := s.GetBankErrors(r.Context(), bankId)
		if err != nil {
			logger.Error(
				"Error encountered when getting bank errors",
				zap.Int64("bank_id", bankId),
				zap.Error(err),
			)
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		writeJSON(w, mapBankErrorRecordsToDTO(records), logger)
	}
}

// LatencyHandler creates a handler listing the duration of every transfer span.
// @Summary Get transfer durations.
// @Tags transactions
// @Produce json
// @Success 200 {array} LatencyRecordDTO "One duration per transfer span"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /time [get]
func LatencyHandler(s transaction.TransactionQueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logRequest(r, "Received Latency Handler", logger)
		records, err := s.GetLatencies(r.Context())
		if err != nil {
			logger.Error("Error encountered when getting latencies", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		writeJSON(w, mapLatencyRecordsToDTO(records), logger)
	}
}

// PercentilesHandler creates a handler for latency percentiles per operation.
// @Summary Get the 50th to 99th latency percentiles per operation.
// @Tags transactions
// @Produce json
// @Success 200 {object} PercentilesResponseDTO "Operation name to percentile label to duration"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /percentiles [get]
func PercentilesHandler(s transaction.TransactionQueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logRequest(r, "Received Percentiles Handler", logger)
		operations, err := s.GetPercentiles(r.Context())
		if err != nil {
			logger.Error("Error encountered when getting percentiles", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		writeJSON(w, mapOperationPercentilesToDTO(operations), logger)
	}
}

// SlowestHandler creates a handler for the slowest spans of the service.
// @Summary Get the five slowest operations.
// @Tags transactions
// @Produce json
// @Success 200 {array} SlowOperationDTO "At most five operations, slowest first"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /slowest [get]
func SlowestHandler(s transaction.TransactionQueryService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logRequest(r, "Received Slowest Handler", logger)
		operations, err := s.GetSlowest(r.Context())
		if err != nil {
			logger.Error("Error encountered when getting slowest operations", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		writeJSON(w, mapSlowOperationsToDTO(operations), logger)
	}
}

// HealthHandler reports that the process is serving.
func HealthHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, logger)
	}
}

func logRequest(r *http.Request, message string, logger *zap.Logger) {
	logger.Info(
		message,
		zap.String("URL Path", r.URL.Path),
		zap.String("Method", r.Method),
	)
}

func parseBankId(r *http.Request) (int64, error) {
	raw, ok := mux.Vars(r)["bankId"]
	if !ok || raw == "" {
		return 0, ErrNoBankId
	}
	bankId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidBankId
	}
	return bankId, nil
}
