package validate

import "testing"

func TestCPF(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid masked", "529.982.247-25", true},
		{"valid unmasked", "52998224725", true},
		{"valid check digits", "123.456.789-09", true},
		{"wrong first check digit", "123.456.789-19", false},
		{"wrong second check digit", "123.456.789-08", false},
		{"all same digits", "111.111.111-11", false},
		{"all zeros", "000.000.000-00", false},
		{"too short", "1234567890", false},
		{"too long", "123456789091", false},
		{"empty", "", false},
		{"letters", "abc.def.ghi-jk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CPF(tt.input); got != tt.expected {
				t.Errorf("CPF(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
