package companies

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler handles HTTP requests for company management. These routes sit
// behind the admin JWT.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new companies handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /admin/companies requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	company, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create company", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("company created", "id", company.ID, "name", company.Name)
	writeJSON(w, http.StatusCreated, company)
}

// Get handles GET /admin/companies/{companyID} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			http.Error(w, "company not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load company", "error", err)
		http.Error(w, "failed to load company", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// List handles GET /admin/companies requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list companies", "error", err)
		http.Error(w, "failed to list companies", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"companies": list,
		"count":     len(list),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
