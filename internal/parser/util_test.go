package parser

import "testing"

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SUPERMERCADO XYZ", "SUPERMERCADO XYZ"},
		{"CAFÉ CENTRAL", "CAF CENTRAL"},
		{"A\x07B", "A B"},
		{"  doble   espacio  ", "doble espacio"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeDescription(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Saldo anterior (1)", "saldo anterior"},
		{"Cargos regulares 2", "cargos regulares"},
		{"IVA de intereses y comisiones", "iva de intereses y comisiones"},
		{"(nota) 123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeLabel(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStripAmountGlyphs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$1,234.56", "1,234.56"},
		{"-$500.00", "500.00"},
		{"+$123.45", "123.45"},
		{" 99.00 ", "99.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := stripAmountGlyphs(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractMetadata(t *testing.T) {
	text := `BBVA MEXICO
ESTADO DE CUENTA   TARJETA DE CREDITO ORO
Segmento PLATINO`
	md := ExtractMetadata(text)
	if md.Bank != "BBVA" {
		t.Errorf("bank: got %q", md.Bank)
	}
	if md.CardType != "ORO" {
		t.Errorf("card type: got %q", md.CardType)
	}
	if md.Segment != "PLATINO" {
		t.Errorf("segment: got %q", md.Segment)
	}
}
