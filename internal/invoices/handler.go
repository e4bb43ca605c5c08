package invoices

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/tenancy"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler handles HTTP requests for invoices.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new invoices handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /invoices requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.CompanyID = companyID

	invoice, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create invoice", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

// List handles GET /invoices requests. ?unpaid=true filters open invoices.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	unpaidOnly := r.URL.Query().Get("unpaid") == "true"
	list, err := h.repo.ListByCompany(r.Context(), companyID, unpaidOnly)
	if err != nil {
		h.logger.Error("failed to list invoices", "error", err, "company_id", companyID)
		http.Error(w, "failed to list invoices", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": list, "count": len(list)})
}

// MarkPaid handles POST /invoices/{invoiceID}/pay requests.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	invoice, err := h.repo.MarkPaid(r.Context(), companyID, chi.URLParam(r, "invoiceID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvoiceNotFound):
			http.Error(w, "invoice not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadyPaid):
			http.Error(w, "invoice already paid", http.StatusConflict)
		default:
			h.logger.Error("failed to settle invoice", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
