package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/tenancy"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler handles HTTP requests for inventory.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new inventory handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /inventory requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.CompanyID = companyID

	product, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create product", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// List handles GET /inventory requests. ?low_stock=true filters to items at
// or below their minimum.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	lowStockOnly := r.URL.Query().Get("low_stock") == "true"
	list, err := h.repo.ListByCompany(r.Context(), companyID, lowStockOnly)
	if err != nil {
		h.logger.Error("failed to list inventory", "error", err, "company_id", companyID)
		http.Error(w, "failed to list inventory", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": list, "count": len(list)})
}

// Adjust handles POST /inventory/{productID}/adjust requests.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.repo.AdjustQuantity(r.Context(), companyID, chi.URLParam(r, "productID"), req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, ErrInsufficientStock):
			http.Error(w, "insufficient stock", http.StatusConflict)
		default:
			h.logger.Error("failed to adjust stock", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
