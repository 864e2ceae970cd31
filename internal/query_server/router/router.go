package router

import (
	"net/http"
	"strconv"

	"github.com/Avi18971911/TransferLens/internal/metrics"
	"github.com/Avi18971911/TransferLens/internal/query_server/handler"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func CreateRouter(
	transactionQueryService transaction.TransactionQueryService,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(requestMetrics(recorder))

	r.Handle("/data", handler.TransferDataHandler(transactionQueryService, logger)).Methods("GET")
	r.Handle("/errors", handler.ErrorsHandler(transactionQueryService, logger)).Methods("GET")
	r.Handle("/errors/{bankId:[0-9]+}", handler.BankErrorsHandler(transactionQueryService, logger)).Methods("GET")
	r.Handle("/time", handler.LatencyHandler(transactionQueryService, logger)).Methods("GET")
	r.Handle("/percentiles", handler.PercentilesHandler(transactionQueryService, logger)).Methods("GET")
	r.Handle("/slowest", handler.SlowestHandler(transactionQueryService, logger)).Methods("GET")

	r.Handle("/healthz", handler.HealthHandler(logger)).Methods("GET")
	r.Handle("/metrics", recorder.Handler()).Methods("GET")

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// requestMetrics counts requests by route template so /errors/42 and /errors/7
// share a series.
func requestMetrics(recorder *metrics.Recorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			recorder.HttpRequest(route, strconv.Itoa(sw.status))
		})
	}
}
