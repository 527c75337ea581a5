package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tbontb/domain"
	"tbontb/repository"
	"tbontb/service"
)

func newTestMortgageHandler() *MortgageHandler {
	svc := service.NewSimulationService(
		42,
		repository.NewSimulationRepositoryMemory(),
		repository.NewMockCache(),
	)
	return NewMortgageHandler(svc)
}

func TestPreview_Success(t *testing.T) {

	handler := newTestMortgageHandler()

	body := `{"fija": {"type": "fixed", "principal": 800000, "term_years": 30, "interest_rate": 4.0}}`
	req := httptest.NewRequest(http.MethodPost, "/mortgage/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var preview domain.MortgagePreview
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if preview.TotalLoanValue != 800_000 {
		t.Errorf("expected total loan 800000, got %.2f", preview.TotalLoanValue)
	}
	if len(preview.MonthlyPaymentFirstYear) != 12 {
		t.Errorf("expected 12 first-year payments, got %d", len(preview.MonthlyPaymentFirstYear))
	}
}

func TestPreview_UnknownMortgageType(t *testing.T) {

	handler := newTestMortgageHandler()

	body := `{"rara": {"type": "globo", "principal": 100000, "term_years": 10}}`
	req := httptest.NewRequest(http.MethodPost, "/mortgage/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Preview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
