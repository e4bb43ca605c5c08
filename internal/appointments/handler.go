package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/tenancy"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Handler handles HTTP requests for appointments.
type Handler struct {
	repo    Repository
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler.
func NewHandler(repo Repository, service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, service: service, logger: logger}
}

// Create handles POST /appointments requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.CompanyID = companyID

	appt, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create appointment", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// List handles GET /appointments requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	filter := ListFilter{Limit: 100}
	q := r.URL.Query()
	filter.ClientID = q.Get("client_id")
	filter.Status = Status(q.Get("status"))
	if fromStr := q.Get("from"); fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filter.From = &from
		}
	}
	if toStr := q.Get("to"); toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			filter.To = &to
		}
	}

	list, err := h.repo.ListByCompany(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err, "company_id", companyID)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": list,
		"count":        len(list),
	})
}

// Get handles GET /appointments/{appointmentID} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	appt, err := h.repo.GetByID(r.Context(), companyID, chi.URLParam(r, "appointmentID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// Confirm handles POST /appointments/{appointmentID}/confirm requests.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Confirm)
}

// Start handles POST /appointments/{appointmentID}/start requests.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Start)
}

// Complete handles POST /appointments/{appointmentID}/complete requests.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete)
}

// Cancel handles POST /appointments/{appointmentID}/cancel requests.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel)
}

// Reschedule handles POST /appointments/{appointmentID}/reschedule requests.
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	var req struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ScheduledAt.IsZero() {
		http.Error(w, "scheduled_at is required", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Reschedule(r.Context(), companyID, chi.URLParam(r, "appointmentID"), req.ScheduledAt)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, companyID, id string) (*Appointment, error)) {
	companyID, ok := tenancy.CompanyIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing company context", http.StatusBadRequest)
		return
	}

	appt, err := op(r.Context(), companyID, chi.URLParam(r, "appointmentID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("appointment operation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
