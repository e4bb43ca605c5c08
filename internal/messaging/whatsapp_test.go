package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

func TestNormalizeBRPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11999998888", "5511999998888"},
		{"5511999998888", "5511999998888"},
		{"(11) 99999-8888", "5511999998888"},
		{"+55 11 99999-8888", "5511999998888"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBRPhone(tt.in))
		})
	}
}

func TestWhatsAppSenderSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload textPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewWhatsAppSender(WhatsAppConfig{
		AccessToken:   "token-123",
		PhoneNumberID: "phone-456",
		APIBaseURL:    srv.URL,
	}, logging.New("error"))

	err := sender.SendText(context.Background(), "11999998888", "Agendamento confirmado!")
	require.NoError(t, err)

	assert.Equal(t, "/phone-456/messages", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "whatsapp", gotPayload.MessagingProduct)
	assert.Equal(t, "5511999998888", gotPayload.To)
	assert.Equal(t, "text", gotPayload.Type)
	assert.Equal(t, "Agendamento confirmado!", gotPayload.Text.Body)
}

func TestWhatsAppSenderSendTextAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewWhatsAppSender(WhatsAppConfig{
		AccessToken:   "bad",
		PhoneNumberID: "phone-456",
		APIBaseURL:    srv.URL,
	}, logging.New("error"))

	err := sender.SendText(context.Background(), "11999998888", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
