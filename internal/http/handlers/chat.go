// Package handlers contains the chat-facing HTTP endpoints.
package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/internal/conversation"
	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// ChatHandler receives chat messages from trusted bot frontends and runs them
// through the conversation pipeline synchronously.
type ChatHandler struct {
	processor *conversation.Processor
	secret    string
	logger    *logging.Logger
}

// NewChatHandler creates the handler. secret is the shared X-Bot-Secret value;
// empty disables the check (development only).
func NewChatHandler(processor *conversation.Processor, secret string, logger *logging.Logger) *ChatHandler {
	return &ChatHandler{
		processor: processor,
		secret:    secret,
		logger:    logger.Named("chat_handler"),
	}
}

type chatMessageRequest struct {
	CompanyID string `json:"company_id"`
	From      string `json:"from"`
	Text      string `json:"text"`
}

// HandleMessage processes POST /chat/message.
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		provided := r.Header.Get("X-Bot-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	var req chatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	res := h.processor.ProcessMessage(r.Context(), conversation.Inbound{
		Text:      req.Text,
		From:      req.From,
		Platform:  conversation.PlatformWeb,
		CompanyID: req.CompanyID,
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.logger.Error("encode chat response", "error", err)
	}
}
