package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Cadastrar Cliente JOAO", "cadastrar cliente joao"},
		{"strips accents", "Agendar João amanhã às 14h", "agendar joao amanha as 14h"},
		{"keeps date and time separators", "dia 14/05 as 15:30", "dia 14/05 as 15:30"},
		{"keeps dashes", "placa ABC-1234", "placa abc-1234"},
		{"drops punctuation", "cadastrar, cliente! joao?", "cadastrar cliente joao"},
		{"collapses whitespace", "  agendar   maria \t hoje ", "agendar maria hoje"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}
