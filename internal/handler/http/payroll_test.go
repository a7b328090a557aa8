package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/payroll"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/response"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPayrollService struct {
	calculateFn func(ctx context.Context, req payroll.CalculateRequest) (payroll.RunSummaryResponse, error)
	getRunFn    func(ctx context.Context, id string) (payroll.RunResponse, error)
	listRunsFn  func(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error)
}

func (s *stubPayrollService) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.RunSummaryResponse, error) {
	return s.calculateFn(ctx, req)
}

func (s *stubPayrollService) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	return s.getRunFn(ctx, id)
}

func (s *stubPayrollService) ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
	return s.listRunsFn(ctx, filter)
}

func (s *stubPayrollService) GetRunItems(ctx context.Context, runID string) ([]payroll.ItemResponse, error) {
	return nil, payroll.ErrRunNotFound
}

func (s *stubPayrollService) CalculateOvertime(ctx context.Context, req payroll.OvertimeRequest) (payroll.Overtime, error) {
	return payroll.Overtime{}, nil
}

func (s *stubPayrollService) ApplyRamadanAdjustments(ctx context.Context, req payroll.RamadanAdjustmentsRequest) (payroll.RamadanAdjustmentsResponse, error) {
	return payroll.RamadanAdjustmentsResponse{}, nil
}

func (s *stubPayrollService) Reconcile(ctx context.Context) error {
	return nil
}

func newPayrollTestRouter(svc payroll.PayrollService) *chi.Mux {
	h := NewPayrollHandler(svc)
	r := chi.NewRouter()
	r.Post("/payroll/calculate", h.Calculate)
	r.Get("/payroll/runs", h.ListRuns)
	r.Get("/payroll/runs/{id}", h.GetRun)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCalculateHandlerCreated(t *testing.T) {
	svc := &stubPayrollService{
		calculateFn: func(ctx context.Context, req payroll.CalculateRequest) (payroll.RunSummaryResponse, error) {
			assert.Equal(t, "company-1", req.CompanyID)
			return payroll.RunSummaryResponse{
				PayrollRunID: "run-1",
				Summary: payroll.RunSummary{
					TotalEmployees: 3,
					TotalGrossPay:  decimal.NewFromInt(30000),
					TotalNetPay:    decimal.NewFromInt(27000),
				},
			}, nil
		},
	}

	body := `{"company_id":"company-1","pay_period_start":"2025-03-01","pay_period_end":"2025-03-31","pay_date":"2025-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "run-1", data["payroll_run_id"])
}

func TestCalculateHandlerInvalidBody(t *testing.T) {
	svc := &stubPayrollService{}

	req := httptest.NewRequest(http.MethodPost, "/payroll/calculate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestCalculateHandlerValidationError(t *testing.T) {
	svc := &stubPayrollService{
		calculateFn: func(ctx context.Context, req payroll.CalculateRequest) (payroll.RunSummaryResponse, error) {
			return payroll.RunSummaryResponse{}, validator.ValidationErrors{
				{Field: "pay_period_end", Message: "must be after pay_period_start"},
			}
		},
	}

	body := `{"company_id":"company-1","pay_period_start":"2025-03-31","pay_period_end":"2025-03-01","pay_date":"2025-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be after pay_period_start", resp.Error.Details["pay_period_end"])
}

func TestCalculateHandlerConflict(t *testing.T) {
	svc := &stubPayrollService{
		calculateFn: func(ctx context.Context, req payroll.CalculateRequest) (payroll.RunSummaryResponse, error) {
			return payroll.RunSummaryResponse{}, payroll.ErrRunAlreadyExists
		},
	}

	body := `{"company_id":"company-1","pay_period_start":"2025-03-01","pay_period_end":"2025-03-31","pay_date":"2025-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/payroll/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetRunHandlerInvalidUUID(t *testing.T) {
	svc := &stubPayrollService{
		getRunFn: func(ctx context.Context, id string) (payroll.RunResponse, error) {
			t.Fatal("service should not be called for an invalid id")
			return payroll.RunResponse{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payroll/runs/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRunHandlerNotFound(t *testing.T) {
	svc := &stubPayrollService{
		getRunFn: func(ctx context.Context, id string) (payroll.RunResponse, error) {
			return payroll.RunResponse{}, payroll.ErrRunNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payroll/runs/123e4567-e89b-12d3-a456-426614174000", nil)
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestListRunsHandlerMeta(t *testing.T) {
	svc := &stubPayrollService{
		listRunsFn: func(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
			assert.Equal(t, 2, filter.Page)
			require.NotNil(t, filter.Status)
			assert.Equal(t, "calculated", *filter.Status)
			return payroll.ListRunsResponse{
				Data:       []payroll.RunResponse{{ID: "run-1"}},
				TotalCount: 45,
				Page:       2,
				Limit:      20,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/payroll/runs?page=2&status=calculated", nil)
	rec := httptest.NewRecorder()
	newPayrollTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(45), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
