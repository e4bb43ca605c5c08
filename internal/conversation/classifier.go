package conversation

import "strings"

// Intent is the recognized purpose of an inbound message.
type Intent string

const (
	IntentRegisterClient      Intent = "register_client"
	IntentScheduleAppointment Intent = "schedule_appointment"
	IntentConfirmAppointment  Intent = "confirm_appointment"
	IntentRegisterPayment     Intent = "register_payment"
	IntentUnknown             Intent = "unknown"
)

// Keyword groups per intent, checked in order. The first group with any
// keyword present in the normalized text decides the intent, so a message
// like "confirmar agendamento" resolves to confirmation even though it also
// mentions scheduling. Prefixes only match at the start of the message, so
// "para cliente joao" registers a client but "agendar para cliente joao"
// falls through to scheduling.
var intentRules = []struct {
	intent   Intent
	keywords []string
	prefixes []string
}{
	{IntentRegisterClient, []string{"cadastrar", "cadastro", "novo cliente", "adicionar cliente", "dados do cliente"}, []string{"para cliente"}},
	{IntentConfirmAppointment, []string{"confirmo", "confirmar", "confirma"}, nil},
	{IntentScheduleAppointment, []string{"agendar", "agendamento", "marcar", "horario para"}, nil},
	{IntentRegisterPayment, []string{"pagamento", "pagou", "recebido"}, nil},
}

// ClassifyIntent maps normalized text to an Intent using ordered keyword
// rules. Messages matching no rule come back as IntentUnknown.
func ClassifyIntent(text string) Intent {
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.intent
			}
		}
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(text, prefix) {
				return rule.intent
			}
		}
	}
	return IntentUnknown
}

// Fields carries the values pulled out of a message for one intent.
type Fields map[string]any

func (f Fields) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

func (f Fields) Int(key string) (int, bool) {
	v, ok := f[key].(int)
	return v, ok
}

func (f Fields) Bool(key string) bool {
	v, _ := f[key].(bool)
	return v
}

// ExtractFields runs the segment and pattern extractors appropriate for the
// intent over normalized text. Keys that could not be extracted are absent
// from the map rather than empty.
func ExtractFields(intent Intent, text string) Fields {
	fields := Fields{}

	switch intent {
	case IntentRegisterClient:
		setIfPresent(fields, "name", ExtractSegment(text,
			[]string{"cliente", "nome"},
			[]string{"telefone", "fone", "celular", "carro", "veiculo", "placa", "modelo"}))
		setIfPresent(fields, "phone", ExtractPhone(text))
		setIfPresent(fields, "vehicle", ExtractSegment(text,
			[]string{"carro", "veiculo", "modelo"},
			[]string{"placa", "cor", "telefone"}))
		setIfPresent(fields, "plate", ExtractPlate(text))

	case IntentScheduleAppointment:
		setIfPresent(fields, "name", ExtractSegment(text,
			[]string{"agendar", "marcar", "cliente", "para"},
			[]string{"amanha", "hoje", "dia", "as ", "carro", "veiculo"}))
		fields["isHoje"] = strings.Contains(text, "hoje")
		fields["isAmanha"] = strings.Contains(text, "amanha")
		if d, ok := ExtractDate(text); ok {
			fields["date"] = d
		}
		if c, ok := ExtractTime(text); ok {
			fields["hora"] = c.Hour
			fields["minutos"] = c.Minute
		}

	case IntentConfirmAppointment:
		setIfPresent(fields, "name", ExtractSegment(text,
			[]string{"confirmar", "confirmo", "confirma", "cliente", "para"},
			[]string{"hoje", "amanha", "dia", "as "}))
		fields["isHoje"] = strings.Contains(text, "hoje")

	case IntentRegisterPayment:
		setIfPresent(fields, "name", ExtractSegment(text,
			[]string{"pagamento", "cliente", "de"},
			[]string{"valor", "hoje"}))
	}

	return fields
}

func setIfPresent(fields Fields, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
