package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"mobile with ddd", "telefone 11999998888", "11999998888"},
		{"landline eight digits", "fone 33334444", "33334444"},
		{"embedded spaces and dashes", "tel 11 99999-8888", "11999998888"},
		{"skips short runs", "dia 14 as 15h telefone 11988887777", "11988887777"},
		{"too long run ignored", "codigo 123456789012345", ""},
		{"no digits", "cadastrar cliente joao", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhone(tt.text))
		})
	}
}

func TestExtractPlate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"legacy format", "placa abc1234", "ABC1234"},
		{"mercosul format", "placa abc1d23", "ABC1D23"},
		{"dash separator", "placa abc-1234", "ABC1234"},
		{"space separator", "placa abc 1234", "ABC1234"},
		{"inside sentence", "carro gol placa xyz9876 cor prata", "XYZ9876"},
		{"absent", "carro gol cor prata", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlate(tt.text))
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Date
		wantOK bool
	}{
		{"day and month", "agendar dia 14/05", Date{Day: 14, Month: 5}, true},
		{"full date", "agendar dia 14/05/2026", Date{Day: 14, Month: 5, Year: 2026}, true},
		{"single digit fields", "dia 5/7", Date{Day: 5, Month: 7}, true},
		{"absent", "agendar maria amanha", Date{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Clock
		wantOK bool
	}{
		{"colon form", "as 15:30", Clock{Hour: 15, Minute: 30}, true},
		{"h separator form", "as 15h30", Clock{Hour: 15, Minute: 30}, true},
		{"bare hour", "as 14h", Clock{Hour: 14}, true},
		{"spaced hour", "as 14 h", Clock{Hour: 14}, true},
		{"horas word", "as 14 horas", Clock{Hour: 14}, true},
		{"rejects hour above 23", "as 25h", Clock{}, false},
		{"absent", "agendar maria amanha", Clock{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTime(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
