package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"cadastrar cliente joao telefone 11999998888", IntentRegisterClient},
		{"novo cliente maria", IntentRegisterClient},
		{"para cliente joao telefone 11999998888", IntentRegisterClient},
		{"dados do cliente joao telefone 11999998888", IntentRegisterClient},
		{NormalizeText("Dados do cliente: Joao, telefone 11999998888"), IntentRegisterClient},
		{"agendar maria amanha as 14h", IntentScheduleAppointment},
		{"marcar lavagem para joao hoje", IntentScheduleAppointment},
		{"confirmar joao hoje", IntentConfirmAppointment},
		{"confirmo o horario", IntentConfirmAppointment},
		{"pagamento do joao recebido", IntentRegisterPayment},
		{"bom dia tudo bem", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.text))
		})
	}
}

func TestClassifyIntentRuleOrder(t *testing.T) {
	// Registration beats scheduling, confirmation beats scheduling.
	assert.Equal(t, IntentRegisterClient, ClassifyIntent("cadastrar cliente e agendar"))
	assert.Equal(t, IntentConfirmAppointment, ClassifyIntent("confirmar agendamento de maria"))
}

func TestClassifyIntentParaClienteIsPrefixOnly(t *testing.T) {
	// Mid-message "para cliente" must not hijack a scheduling request.
	assert.Equal(t, IntentRegisterClient, ClassifyIntent(NormalizeText("Para cliente Joao telefone 11999998888")))
	assert.Equal(t, IntentScheduleAppointment, ClassifyIntent("agendar para cliente joao amanha"))
}

func TestExtractFieldsRegisterClient(t *testing.T) {
	text := NormalizeText("Cadastrar cliente Joao telefone 11999998888 carro Gol placa ABC1234")
	fields := ExtractFields(IntentRegisterClient, text)

	assert.Equal(t, "joao", fields.String("name"))
	assert.Equal(t, "11999998888", fields.String("phone"))
	assert.Equal(t, "gol", fields.String("vehicle"))
	assert.Equal(t, "ABC1234", fields.String("plate"))
}

func TestExtractFieldsRegisterClientOmitsAbsent(t *testing.T) {
	fields := ExtractFields(IntentRegisterClient, "cadastrar cliente joao")

	assert.Equal(t, "joao", fields.String("name"))
	assert.NotContains(t, fields, "phone")
	assert.NotContains(t, fields, "vehicle")
	assert.NotContains(t, fields, "plate")
}

func TestExtractFieldsSchedule(t *testing.T) {
	text := NormalizeText("Agendar Maria amanhã às 14h")
	fields := ExtractFields(IntentScheduleAppointment, text)

	assert.Equal(t, "maria", fields.String("name"))
	assert.True(t, fields.Bool("isAmanha"))
	assert.False(t, fields.Bool("isHoje"))
	hora, ok := fields.Int("hora")
	assert.True(t, ok)
	assert.Equal(t, 14, hora)
	minutos, _ := fields.Int("minutos")
	assert.Equal(t, 0, minutos)
}

func TestExtractFieldsScheduleExplicitDate(t *testing.T) {
	text := NormalizeText("agendar joao dia 14/05 as 15:30")
	fields := ExtractFields(IntentScheduleAppointment, text)

	assert.Equal(t, "joao", fields.String("name"))
	assert.Equal(t, Date{Day: 14, Month: 5}, fields["date"])
	hora, _ := fields.Int("hora")
	minutos, _ := fields.Int("minutos")
	assert.Equal(t, 15, hora)
	assert.Equal(t, 30, minutos)
}

func TestExtractFieldsConfirm(t *testing.T) {
	fields := ExtractFields(IntentConfirmAppointment, "confirmar joao hoje")

	assert.Equal(t, "joao", fields.String("name"))
	assert.True(t, fields.Bool("isHoje"))
}
