package parser

import "testing"

func TestExtractInstallments(t *testing.T) {
	text := `COMPRAS A MESES SIN INTERESES
15-ENE-2024
MUEBLERIA CENTRO
$12,000.00
$8,000.00
$1,000.00
4/12
0.0%
20-FEB-2024
VIAJES AEREOS MX
$6,000.00
$5,000.00
$1,000.00
1/6
0.0%
`
	records := ExtractInstallments(text)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	r := records[0]
	if iso := r.Date.Format("2006-01-02"); iso != "2024-01-15" {
		t.Errorf("date: got %s", iso)
	}
	if r.Description != "MUEBLERIA CENTRO" {
		t.Errorf("description: got %q", r.Description)
	}
	if r.OriginalAmount.StringFixed(2) != "12000.00" {
		t.Errorf("original: got %s", r.OriginalAmount.StringFixed(2))
	}
	if r.PendingBalance.StringFixed(2) != "8000.00" {
		t.Errorf("pending: got %s", r.PendingBalance.StringFixed(2))
	}
	if r.PaymentRequired.StringFixed(2) != "1000.00" {
		t.Errorf("required: got %s", r.PaymentRequired.StringFixed(2))
	}
	if r.PaymentNumber != "4/12" {
		t.Errorf("payment number: got %q", r.PaymentNumber)
	}
	if r.InterestRate != "0.0%" {
		t.Errorf("interest rate: got %q", r.InterestRate)
	}

	if records[1].Description != "VIAJES AEREOS MX" {
		t.Errorf("second record description: got %q", records[1].Description)
	}
}

func TestExtractInstallmentsSkipsBrokenWindows(t *testing.T) {
	// Second record is truncated: the window anchored at its date line
	// fails to parse and the extractor moves on without aborting.
	text := `15-ENE-2024
MUEBLERIA CENTRO
$12,000.00
$8,000.00
$1,000.00
4/12
0.0%
20-FEB-2024
VIAJES AEREOS MX
no es un monto
$5,000.00
$1,000.00
1/6
0.0%
`
	records := ExtractInstallments(text)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Description != "MUEBLERIA CENTRO" {
		t.Errorf("got %q", records[0].Description)
	}
}

func TestExtractInstallmentsEmptyText(t *testing.T) {
	if records := ExtractInstallments("nothing relevant here"); len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
