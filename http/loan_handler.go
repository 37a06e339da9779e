package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"loan-catalog/domain"
	"loan-catalog/logger"
	"loan-catalog/service"
)

type LoanHandler struct {
	service *service.LoanService
	log     logger.Logger
}

func NewLoanHandler(service *service.LoanService, log logger.Logger) *LoanHandler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &LoanHandler{service: service, log: log}
}

// QuoteLoan serves POST /loan/quote.
func (h *LoanHandler) QuoteLoan(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.WithError(err).Debug("error decoding request body", nil)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.QuoteLoan(req)
	if err != nil {
		h.log.WithError(err).Info("quote rejected", map[string]interface{}{"loan_id": req.LoanID})
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.WithError(err).Warn("error writing response", nil)
	}
}
