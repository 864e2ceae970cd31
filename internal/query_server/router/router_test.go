package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Avi18971911/TransferLens/internal/metrics"
	"github.com/Avi18971911/TransferLens/internal/query_server/service/transaction/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubTransactionService struct {
	bankIds []int64
}

func (s *stubTransactionService) GetAttribution(ctx context.Context) ([]model.AttributionRecord, error) {
	return []model.AttributionRecord{}, nil
}

func (s *stubTransactionService) GetErrors(ctx context.Context) ([]model.ErrorRecord, error) {
	return []model.ErrorRecord{}, nil
}

func (s *stubTransactionService) GetBankErrors(ctx context.Context, bankId int64) ([]model.BankErrorRecord, error) {
	s.bankIds = append(s.bankIds, bankId)
	return []model.BankErrorRecord{}, nil
}

func (s *stubTransactionService) GetLatencies(ctx context.Context) ([]model.LatencyRecord, error) {
	return []model.LatencyRecord{}, nil
}

func (s *stubTransactionService) GetPercentiles(ctx context.Context) ([]model.OperationPercentiles, error) {
	return []model.OperationPercentiles{}, nil
}

func (s *stubTransactionService) GetSlowest(ctx context.Context) ([]model.SlowOperation, error) {
	return []model.SlowOperation{}, nil
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCreateRouter(t *testing.T) {
	t.Run("should serve every view", func(t *testing.T) {
		r := CreateRouter(&stubTransactionService{}, metrics.NewRecorder(), zap.NewNop())

		for _, path := range []string{"/data", "/errors", "/errors/42", "/time", "/percentiles", "/slowest", "/healthz"} {
			rec := get(r, path)
			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), path)
		}
	})

	t.Run("should route the bank id to the bank scoped view", func(t *testing.T) {
		service := &stubTransactionService{}
		r := CreateRouter(service, metrics.NewRecorder(), zap.NewNop())

		get(r, "/errors/42")

		assert.Equal(t, []int64{42}, service.bankIds)
	})

	t.Run("should not match a non numeric bank id", func(t *testing.T) {
		service := &stubTransactionService{}
		r := CreateRouter(service, metrics.NewRecorder(), zap.NewNop())

		rec := get(r, "/errors/abc")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, service.bankIds)
	})

	t.Run("should reject other methods", func(t *testing.T) {
		r := CreateRouter(&stubTransactionService{}, metrics.NewRecorder(), zap.NewNop())
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/data", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("should count requests by route template", func(t *testing.T) {
		r := CreateRouter(&stubTransactionService{}, metrics.NewRecorder(), zap.NewNop())

		get(r, "/errors/42")
		get(r, "/errors/7")
		body := get(r, "/metrics").Body.String()

		assert.Contains(t, body, `transferlens_http_requests_total{code="200",route="/errors/{bankId:[0-9]+}"} 2`)
	})
}
