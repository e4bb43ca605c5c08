// Package router assembles the HTTP surface of the service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/appointments"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/clients"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/companies"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/http/handlers"
	httpmiddleware "github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/http/middleware"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/inventory"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/invoices"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/quotes"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/webchat"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	ChatHandler     *handlers.ChatHandler
	WhatsAppWebhook *handlers.WhatsAppWebhookHandler
	WebchatHandler  *webchat.Handler

	CompaniesHandler    *companies.Handler
	ClientsHandler      *clients.Handler
	AppointmentsHandler *appointments.Handler
	QuotesHandler       *quotes.Handler
	InventoryHandler    *inventory.Handler
	InvoicesHandler     *invoices.Handler

	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: health, chat ingress, webhooks, metrics.
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.ChatHandler != nil {
			public.Post("/chat/message", cfg.ChatHandler.HandleMessage)
		}
		if cfg.WhatsAppWebhook != nil {
			public.Get("/webhooks/whatsapp", cfg.WhatsAppWebhook.HandleVerify)
			public.Post("/webhooks/whatsapp", cfg.WhatsAppWebhook.HandleInbound)
		}
		if cfg.WebchatHandler != nil {
			public.Handle("/webchat", cfg.WebchatHandler)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Back-office API, tenant-scoped via the X-Company-Id header.
	r.Route("/api", func(api chi.Router) {
		api.Use(requireCompanyID)

		if cfg.ClientsHandler != nil {
			api.Route("/clients", func(rt chi.Router) {
				rt.Post("/", cfg.ClientsHandler.Create)
				rt.Get("/", cfg.ClientsHandler.List)
				rt.Get("/{clientID}", cfg.ClientsHandler.Get)
				rt.Post("/{clientID}/vehicles", cfg.ClientsHandler.AddVehicle)
				rt.Get("/{clientID}/vehicles", cfg.ClientsHandler.ListVehicles)
			})
		}
		if cfg.AppointmentsHandler != nil {
			api.Route("/appointments", func(rt chi.Router) {
				rt.Post("/", cfg.AppointmentsHandler.Create)
				rt.Get("/", cfg.AppointmentsHandler.List)
				rt.Get("/{appointmentID}", cfg.AppointmentsHandler.Get)
				rt.Post("/{appointmentID}/confirm", cfg.AppointmentsHandler.Confirm)
				rt.Post("/{appointmentID}/start", cfg.AppointmentsHandler.Start)
				rt.Post("/{appointmentID}/complete", cfg.AppointmentsHandler.Complete)
				rt.Post("/{appointmentID}/cancel", cfg.AppointmentsHandler.Cancel)
				rt.Post("/{appointmentID}/reschedule", cfg.AppointmentsHandler.Reschedule)
			})
		}
		if cfg.QuotesHandler != nil {
			api.Route("/quotes", func(rt chi.Router) {
				rt.Post("/", cfg.QuotesHandler.Create)
				rt.Get("/", cfg.QuotesHandler.List)
				rt.Post("/{quoteID}/accept", cfg.QuotesHandler.Accept)
				rt.Post("/{quoteID}/reject", cfg.QuotesHandler.Reject)
			})
		}
		if cfg.InventoryHandler != nil {
			api.Route("/inventory", func(rt chi.Router) {
				rt.Post("/", cfg.InventoryHandler.Create)
				rt.Get("/", cfg.InventoryHandler.List)
				rt.Post("/{productID}/adjust", cfg.InventoryHandler.Adjust)
			})
		}
		if cfg.InvoicesHandler != nil {
			api.Route("/invoices", func(rt chi.Router) {
				rt.Post("/", cfg.InvoicesHandler.Create)
				rt.Get("/", cfg.InvoicesHandler.List)
				rt.Post("/{invoiceID}/pay", cfg.InvoicesHandler.MarkPaid)
			})
		}
	})

	// Admin routes, protected by the HMAC JWT.
	if cfg.AdminAuthSecret != "" && cfg.CompaniesHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Post("/companies", cfg.CompaniesHandler.Create)
			admin.Get("/companies", cfg.CompaniesHandler.List)
			admin.Get("/companies/{companyID}", cfg.CompaniesHandler.Get)
		})
	}

	return r
}
