package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorMessage is the body of every non-2xx response.
// @swagger:model ErrorMessage
type ErrorMessage struct {
	Message string `json:"message"`
}

func HttpError(w http.ResponseWriter, message string, statusCode int, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(ErrorMessage{Message: message})
	if err != nil {
		logger.Error("Failed to encode error message", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, body interface{}, logger *zap.Logger) {
	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error("Error encountered when encoding response", zap.Error(err))
		HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		logger.Error("Error encountered when writing response", zap.Error(err))
	}
}
