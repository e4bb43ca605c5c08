package clients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/tenancy"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler handles HTTP requests for clients and vehicles.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new clients handler.
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /clients requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}
	req.CompanyID = companyID

	client, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create client", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.logger.Info("client created", "id", client.ID, "company_id", companyID)
	writeJSON(w, http.StatusCreated, client)
}

// Get handles GET /clients/{clientID} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	client, err := h.repo.GetByID(r.Context(), companyID, chi.URLParam(r, "clientID"))
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load client", "error", err)
		http.Error(w, "failed to load client", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// List handles GET /clients requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	filter := ListFilter{Limit: 50}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	list, err := h.repo.ListByCompany(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("failed to list clients", "error", err, "company_id", companyID)
		http.Error(w, "failed to list clients", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clients": list,
		"count":   len(list),
	})
}

// AddVehicle handles POST /clients/{clientID}/vehicles requests.
func (h *Handler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	clientID := chi.URLParam(r, "clientID")
	if _, err := h.repo.GetByID(r.Context(), companyID, clientID); err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.ClientID = clientID

	vehicle, err := h.repo.AddVehicle(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to add vehicle", "error", err, "client_id", clientID)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// ListVehicles handles GET /clients/{clientID}/vehicles requests.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	clientID := chi.URLParam(r, "clientID")
	if _, err := h.repo.GetByID(r.Context(), companyID, clientID); err != nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	vehicles, err := h.repo.ListVehicles(r.Context(), clientID)
	if err != nil {
		h.logger.Error("failed to list vehicles", "error", err, "client_id", clientID)
		http.Error(w, "failed to list vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
