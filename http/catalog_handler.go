package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"loan-catalog/domain"
	"loan-catalog/logger"
	"loan-catalog/service"
)

type CatalogHandler struct {
	service *service.CatalogService
	log     logger.Logger
}

func NewCatalogHandler(service *service.CatalogService, log logger.Logger) *CatalogHandler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CatalogHandler{service: service, log: log}
}

// ListLoans serves GET /loans.
func (h *CatalogHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, r, h.service.GetCatalog())
}

// GetLoan serves GET /loans/{id}.
func (h *CatalogHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid loan id", http.StatusBadRequest)
		return
	}

	loan, err := h.service.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeJSON(w, r, loan)
}

// Snapshot serves GET /loans/snapshot.
func (h *CatalogHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := h.service.Snapshot()
	if err != nil {
		h.log.WithError(err).Error("failed to build snapshot", nil)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		h.log.WithError(err).Warn("error writing response", nil)
	}
}

func (h *CatalogHandler) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.log.WithError(err).Error("error encoding response", map[string]interface{}{"path": r.URL.Path})
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		h.log.WithError(err).Warn("error writing response", nil)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLoanNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
