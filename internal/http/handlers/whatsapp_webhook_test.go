package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

func TestWhatsAppWebhookVerifySuccess(t *testing.T) {
	proc, _, _ := newTestProcessor(t)
	handler := NewWhatsAppWebhookHandler(proc, "verify-me", logging.New("error"))

	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/whatsapp?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=424242", nil)
	rec := httptest.NewRecorder()

	handler.HandleVerify(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "424242", rec.Body.String())
}

func TestWhatsAppWebhookVerifyRejectsBadToken(t *testing.T) {
	proc, _, _ := newTestProcessor(t)
	handler := NewWhatsAppWebhookHandler(proc, "verify-me", logging.New("error"))

	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/whatsapp?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=424242", nil)
	rec := httptest.NewRecorder()

	handler.HandleVerify(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWhatsAppWebhookVerifyRejectsWrongMode(t *testing.T) {
	proc, _, _ := newTestProcessor(t)
	handler := NewWhatsAppWebhookHandler(proc, "verify-me", logging.New("error"))

	req := httptest.NewRequest(http.MethodGet,
		"/webhooks/whatsapp?hub.mode=unsubscribe&hub.verify_token=verify-me&hub.challenge=424242", nil)
	rec := httptest.NewRecorder()

	handler.HandleVerify(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWhatsAppWebhookInboundTextMessage(t *testing.T) {
	proc, company, clientRepo := newTestProcessor(t)
	handler := NewWhatsAppWebhookHandler(proc, "verify-me", logging.New("error"))

	payload := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"messages": [{
						"from": "5511999998888",
						"id": "wamid.1",
						"type": "text",
						"text": {"body": "Cadastrar cliente Pedro telefone 11988887777"}
					}]
				}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/whatsapp", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.HandleInbound(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// Without a tenant hint the pipeline falls back to the first company.
	client, err := clientRepo.FindLatestByNameContaining(context.Background(), company.ID, "pedro")
	require.NoError(t, err)
	assert.Equal(t, "11988887777", client.Phone)
}

func TestWhatsAppWebhookInboundIgnoresNonText(t *testing.T) {
	proc, company, clientRepo := newTestProcessor(t)
	handler := NewWhatsAppWebhookHandler(proc, "verify-me", logging.New("error"))

	payload := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"field": "messages",
				"value": {"messages": [{"from": "5511999998888", "type": "image"}]}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/whatsapp", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	handler.HandleInbound(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := clientRepo.FindLatestByNameContaining(context.Background(), company.ID, "pedro")
	assert.Error(t, err)
}

func TestWhatsAppWebhookInboundBadPayloadStillAcks(t *testing.T) {
	proc, _, _ := newTestProcessor(t)
	handler := NewWhatsAppWebhookHandler(proc, "verify-me", logging.New("error"))

	req := httptest.NewRequest(http.MethodPost, "/webhooks/whatsapp", strings.NewReader("not-json"))
	rec := httptest.NewRecorder()

	handler.HandleInbound(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
