// Package messaging implements outbound reply delivery to chat platforms.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

const defaultGraphAPIBaseURL = "https://graph.facebook.com/v18.0"

// WhatsAppConfig holds the WhatsApp Business Cloud API credentials.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	// APIBaseURL overrides the Graph API endpoint, mainly for tests.
	APIBaseURL string
	Timeout    time.Duration
}

// WhatsAppSender delivers text replies through the WhatsApp Business Cloud
// API. It satisfies conversation.ReplyMessenger.
type WhatsAppSender struct {
	cfg    WhatsAppConfig
	client *http.Client
	logger *logging.Logger
}

// NewWhatsAppSender creates a sender from the config.
func NewWhatsAppSender(cfg WhatsAppConfig, logger *logging.Logger) *WhatsAppSender {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultGraphAPIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &WhatsAppSender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("whatsapp"),
	}
}

type textPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	RecipientType    string      `json:"recipient_type"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type textContent struct {
	Body string `json:"body"`
}

// SendText posts a text message to the recipient's WhatsApp number.
func (s *WhatsAppSender) SendText(ctx context.Context, to, body string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               NormalizeBRPhone(to),
		Type:             "text",
		Text:             textContent{Body: body},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("messaging: marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.cfg.APIBaseURL, s.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("messaging: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("messaging: send text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("messaging: graph api status %d: %s", resp.StatusCode, detail)
	}

	s.logger.Debug("text message sent", "to", payload.To)
	return nil
}
