package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-catalog/domain"
	"loan-catalog/logger"
	"loan-catalog/repository"
	"loan-catalog/service"
)

func newTestRouter(t *testing.T, capacity int) http.Handler {
	log := logger.NewTestLogger(t)
	catalog := service.NewCatalogService(repository.NewLoanCatalogMemory(), repository.NewMockCache(), log)
	loans := service.NewLoanService(repository.NewLoanRepositoryMemory(), catalog, log)

	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(NewCatalogHandler(catalog, log), NewLoanHandler(loans, log), limiter, log)
}

func TestListLoans_OK(t *testing.T) {

	router := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/loans", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var loans []domain.LoanRecord
	if err := json.NewDecoder(w.Body).Decode(&loans); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if len(loans) != 4 || loans[3].Name != "Roofing loan" {
		t.Errorf("unexpected catalog: %+v", loans)
	}

	if w.Header().Get("X-Request-ID") == "" {
		t.Errorf("expected X-Request-ID header")
	}
}

func TestListLoans_MethodNotAllowed(t *testing.T) {

	router := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/loans", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestGetLoan(t *testing.T) {

	router := newTestRouter(t, 10)

	tests := []struct {
		path string
		code int
	}{
		{"/loans/3", http.StatusOK},
		{"/loans/99", http.StatusNotFound},
		{"/loans/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.code, w.Code)
		}
	}
}

func TestGetLoan_Body(t *testing.T) {

	router := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/loans/4", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var loan domain.LoanRecord
	if err := json.NewDecoder(w.Body).Decode(&loan); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	expected := domain.LoanRecord{ID: 4, Name: "Roofing loan", Amount: 20000}
	if loan != expected {
		t.Errorf("expected %+v, got %+v", expected, loan)
	}
}

func TestSnapshot_OK(t *testing.T) {

	router := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/loans/snapshot", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if !bytes.Contains(w.Body.Bytes(), []byte(`"Battery loan"`)) {
		t.Errorf("snapshot missing Battery loan: %s", w.Body.String())
	}
}

func TestQuoteLoan_OK(t *testing.T) {

	router := newTestRouter(t, 10)

	body := []byte(`{
		"id": 4,
		"interest_rate": 0,
		"term_months": 20
	}`)

	req := httptest.NewRequest(http.MethodPost, "/loan/quote", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.LoanResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if result.MonthlyPayment != 1000 {
		t.Errorf("expected 1000, got %.2f", result.MonthlyPayment)
	}
}

func TestQuoteLoan_Errors(t *testing.T) {

	router := newTestRouter(t, 10)

	tests := []struct {
		name   string
		method string
		ctype  string
		body   string
		code   int
	}{
		{"method", http.MethodGet, "", "", http.StatusMethodNotAllowed},
		{"content type", http.MethodPost, "text/plain", `{}`, http.StatusUnsupportedMediaType},
		{"bad json", http.MethodPost, "application/json", `{invalid-json}`, http.StatusBadRequest},
		{"unknown loan", http.MethodPost, "application/json", `{"id": 9, "term_months": 12}`, http.StatusNotFound},
		{"bad term", http.MethodPost, "application/json", `{"id": 1, "term_months": 0}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/loan/quote", bytes.NewBufferString(tt.body))
		if tt.ctype != "" {
			req.Header.Set("Content-Type", tt.ctype)
		}
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.code, w.Code)
		}
	}
}

func TestRouter_RateLimited(t *testing.T) {

	router := newTestRouter(t, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/loans", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected third request to be limited, got %v", codes)
	}
}

func TestRequestIDMiddleware_KeepsIncoming(t *testing.T) {

	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
}

func TestRouter_NilLoggers(t *testing.T) {

	catalog := service.NewCatalogService(repository.NewLoanCatalogMemory(), nil, nil)
	loans := service.NewLoanService(repository.NewLoanRepositoryMemory(), catalog, nil)
	limiter := NewRateLimiter(10, time.Minute)
	defer limiter.Stop()

	router := NewRouter(NewCatalogHandler(catalog, nil), NewLoanHandler(loans, nil), limiter, nil)

	paths := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodGet, "/loans", "", http.StatusOK},
		{http.MethodGet, "/loans/snapshot", "", http.StatusOK},
		{http.MethodGet, "/loans/99", "", http.StatusNotFound},
		{http.MethodPost, "/loan/quote", `{invalid-json}`, http.StatusBadRequest},
		{http.MethodPost, "/loan/quote", `{"id": 9, "term_months": 12}`, http.StatusNotFound},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, bytes.NewBufferString(p.body))
		if p.method == http.MethodPost {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != p.code {
			t.Errorf("%s %s: expected %d, got %d", p.method, p.path, p.code, w.Code)
		}
	}
}
