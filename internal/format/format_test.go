package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"masked cpf", "123.456.789-09", "12345678909"},
		{"masked phone", "(11) 98765-4321", "11987654321"},
		{"letters and digits", "a1b2c3", "123"},
		{"empty", "", ""},
		{"only punctuation", ".-/() ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unmask(tt.input))
		})
	}
}

func TestCPF(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"full", "12345678909", "123.456.789-09"},
		{"already masked", "123.456.789-09", "123.456.789-09"},
		{"partial two digits", "11", "11"},
		{"partial four digits", "1234", "123.4"},
		{"partial ten digits", "1234567890", "123.456.789-0"},
		{"overflow truncated", "123456789091111", "123.456.789-09"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CPF(tt.input))
		})
	}
}

func TestCNPJ(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12345678000195", "12.345.678/0001-95"},
		{"12.345.678/0001-95", "12.345.678/0001-95"},
		{"123456", "12.345.6"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CNPJ(tt.input))
	}
}

func TestCEP(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"01310100", "01310-100"},
		{"01310-100", "01310-100"},
		{"013", "013"},
		{"013101", "01310-1"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CEP(tt.input))
	}
}

func TestPIS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12012345678", "120.12345.67-8"},
		{"120.12345.67-8", "120.12345.67-8"},
		{"12012", "120.12"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, PIS(tt.input))
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"mobile", "11987654321", "(11) 98765-4321"},
		{"landline", "1132654321", "(11) 3265-4321"},
		{"already masked", "(11) 98765-4321", "(11) 98765-4321"},
		{"area only", "11", "(11"},
		{"single digit", "1", "(1"},
		{"partial", "11987", "(11) 987"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Phone(tt.input))
		})
	}
}

// Format(Unmask(Format(x))) == Format(x) for partial and complete inputs.
func TestFormatIdempotence(t *testing.T) {
	inputs := []string{"", "1", "11", "123", "12345", "12345678", "12345678909", "9999999999999999"}

	formatters := map[string]func(string) string{
		"cpf":   CPF,
		"cnpj":  CNPJ,
		"cep":   CEP,
		"pis":   PIS,
		"phone": Phone,
	}

	for name, fn := range formatters {
		t.Run(name, func(t *testing.T) {
			for _, in := range inputs {
				once := fn(in)
				again := fn(Unmask(once))
				assert.Equal(t, once, again, "input %q", in)
			}
		})
	}
}
