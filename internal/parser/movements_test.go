package parser

import (
	"testing"

	"github.com/finclaro/statement-analyzer/internal/models"
)

func TestExtractMovements(t *testing.T) {
	text := `DESGLOSE DE MOVIMIENTOS
15-ENE-2024 16-ENE-2024 SUPERMERCADO XYZ +$123.45
20-ENE-2024 21-ENE-2024 RESTAURANTE EL PATIO, SUC. 12 +$456.78
15-ENE-2024 16-ENE-2024 PAGO RECIBIDO -$500.00
algo que no es un movimiento
`
	movements, issues := ExtractMovements(text)

	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if len(movements) != 3 {
		t.Fatalf("got %d movements, want 3", len(movements))
	}

	first := movements[0]
	if first.Type != models.MovementCharge {
		t.Errorf("type: got %s, want charge", first.Type)
	}
	if iso := first.Date.Format("2006-01-02"); iso != "2024-01-15" {
		t.Errorf("date: got %s, want 2024-01-15 (transaction date, not posting date)", iso)
	}
	if first.Description != "SUPERMERCADO XYZ" {
		t.Errorf("description: got %q", first.Description)
	}
	if first.Amount.StringFixed(2) != "123.45" {
		t.Errorf("amount: got %s, want 123.45", first.Amount.StringFixed(2))
	}

	if movements[1].Description != "RESTAURANTE EL PATIO, SUC. 12" {
		t.Errorf("punctuated description: got %q", movements[1].Description)
	}

	payment := movements[2]
	if payment.Type != models.MovementPayment {
		t.Errorf("type: got %s, want payment", payment.Type)
	}
	if payment.Amount.StringFixed(2) != "500.00" {
		t.Errorf("payment amount: got %s, want 500.00", payment.Amount.StringFixed(2))
	}
}

func TestExtractMovementsSanitizesDescriptions(t *testing.T) {
	text := "15-ENE-2024 16-ENE-2024 CAFÉ  CENTRAL +$99.00\n"
	movements, _ := ExtractMovements(text)
	if len(movements) != 1 {
		t.Fatalf("got %d movements, want 1", len(movements))
	}
	if movements[0].Description != "CAF CENTRAL" {
		t.Errorf("got %q, want non-ASCII replaced and whitespace collapsed", movements[0].Description)
	}
}

func TestExtractMovementsExcludesBadDates(t *testing.T) {
	text := `15-QQQ-2024 16-ENE-2024 COMERCIO RARO +$10.00
15-ENE-2024 16-ENE-2024 COMERCIO BUENO +$20.00
`
	movements, issues := ExtractMovements(text)
	if len(movements) != 1 {
		t.Fatalf("got %d movements, want 1", len(movements))
	}
	if movements[0].Description != "COMERCIO BUENO" {
		t.Errorf("kept %q, want COMERCIO BUENO", movements[0].Description)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, want 1 for the excluded record", len(issues))
	}
	if issues[0].Stage != "movements" {
		t.Errorf("issue stage: got %q", issues[0].Stage)
	}
}
