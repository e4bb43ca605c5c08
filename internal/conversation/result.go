package conversation

// FailureKind classifies why an executor could not complete an action.
type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureMissingInput FailureKind = "missing_input"
	FailureNotFound     FailureKind = "not_found"
	FailurePersistence  FailureKind = "persistence"
)

// Result is the outcome of processing one inbound message: the classified
// intent, the fields pulled from the text and the reply to deliver back to
// the sender. Failure is FailureNone on success.
type Result struct {
	Intent  Intent      `json:"intent"`
	Fields  Fields      `json:"fields"`
	Reply   string      `json:"reply"`
	Failure FailureKind `json:"failure,omitempty"`
}

// Placeholder values stored when a message did not carry the datum.
const (
	PlateNotInformed = "SEM PLACA"
	PhoneNotInformed = "nao informado"
)

const (
	replyMissingClientName   = "Nao consegui identificar o nome do cliente. Pode repetir informando o nome?"
	replyMissingClientPhone  = "Faltou o telefone do cliente. Pode enviar o numero?"
	replyMissingScheduleName = "Para agendar preciso do nome do cliente. Exemplo: agendar Maria amanha as 14h."
	replyMissingConfirmName  = "Para confirmar preciso do nome do cliente. Exemplo: confirmar Joao hoje."
	replyPaymentNotReady     = "O registro de pagamentos ainda esta em desenvolvimento. Em breve!"
	replyInternalError       = "Tivemos um problema ao processar sua mensagem. Tente novamente em instantes."
	replyUnknown             = "Nao entendi. Voce pode: cadastrar cliente, agendar servico ou confirmar agendamento."
)
