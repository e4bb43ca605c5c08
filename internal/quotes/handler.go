package quotes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/tenancy"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler handles HTTP requests for quotes.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new quotes handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /quotes requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.CompanyID = companyID

	quote, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create quote", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

// List handles GET /quotes requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	list, err := h.repo.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to list quotes", "error", err, "company_id", companyID)
		http.Error(w, "failed to list quotes", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quotes": list, "count": len(list)})
}

// Accept handles POST /quotes/{quoteID}/accept requests.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, StatusAccepted)
}

// Reject handles POST /quotes/{quoteID}/reject requests.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, StatusRejected)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, status Status) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	quote, err := h.repo.SetStatus(r.Context(), companyID, chi.URLParam(r, "quoteID"), status)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuoteNotFound):
			http.Error(w, "quote not found", http.StatusNotFound)
		case errors.Is(err, ErrQuoteResolved):
			http.Error(w, "quote already resolved", http.StatusConflict)
		default:
			h.logger.Error("failed to resolve quote", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
