package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/conversation"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// WhatsAppWebhookHandler receives Meta webhook callbacks: the GET
// subscription handshake and POSTed inbound messages.
type WhatsAppWebhookHandler struct {
	processor   *conversation.Processor
	verifyToken string
	logger      *logging.Logger
}

// NewWhatsAppWebhookHandler creates the handler. verifyToken must match the
// value configured in the Meta app dashboard.
func NewWhatsAppWebhookHandler(processor *conversation.Processor, verifyToken string, logger *logging.Logger) *WhatsAppWebhookHandler {
	return &WhatsAppWebhookHandler{
		processor:   processor,
		verifyToken: verifyToken,
		logger:      logger.Named("whatsapp_webhook"),
	}
}

// HandleVerify answers the GET handshake Meta performs when the webhook URL
// is registered.
func (h *WhatsAppWebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode != "subscribe" || h.verifyToken == "" || token != h.verifyToken {
		h.logger.Warn("webhook verification rejected", "mode", mode)
		http.Error(w, "verification failed", http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge))
}

type webhookPayload struct {
	Object string         `json:"object"`
	Entry  []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	ID      string          `json:"id"`
	Changes []webhookChange `json:"changes"`
}

type webhookChange struct {
	Field string       `json:"field"`
	Value webhookValue `json:"value"`
}

type webhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []webhookMessage `json:"messages,omitempty"`
}

type webhookMessage struct {
	From string       `json:"from"`
	ID   string       `json:"id"`
	Type string       `json:"type"`
	Text *webhookText `json:"text,omitempty"`
}

type webhookText struct {
	Body string `json:"body"`
}

// HandleInbound processes POSTed webhook events. Non-text events are ignored.
// The endpoint always acks with 200 so Meta does not retry payloads we have
// already looked at.
func (h *WhatsAppWebhookHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("undecodable webhook payload", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil {
					continue
				}
				h.processor.ProcessMessage(r.Context(), conversation.Inbound{
					Text:     msg.Text.Body,
					From:     msg.From,
					Platform: conversation.PlatformWhatsApp,
				})
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}
