package writer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finclaro/statement-analyzer/internal/models"
)

func sampleStatement() *models.Statement {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &models.Statement{
		Summary: models.NewSummary(),
		Movements: []models.Movement{
			{
				Date:        date,
				Description: "SUPERMERCADO XYZ",
				Amount:      decimal.RequireFromString("123.45"),
				Type:        models.MovementCharge,
			},
			{
				Date:        date,
				Description: "PAGO RECIBIDO",
				Amount:      decimal.RequireFromString("500.00"),
				Type:        models.MovementPayment,
			},
		},
		Installments: []models.InstallmentRecord{
			{
				Date:            date,
				Description:     "MUEBLERIA CENTRO",
				OriginalAmount:  decimal.RequireFromString("1200.00"),
				PendingBalance:  decimal.RequireFromString("800.00"),
				PaymentRequired: decimal.RequireFromString("100.00"),
				PaymentNumber:   "4/12",
				InterestRate:    "0.0%",
			},
		},
		Metadata: models.Metadata{Bank: "BBVA", CardType: "ORO"},
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeMetadata: true, IncludeInstallments: true}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Bank,BBVA",
		"Date,Description,Type,Amount",
		"2024-01-15,SUPERMERCADO XYZ,charge,123.45",
		"2024-01-15,PAGO RECIBIDO,payment,500.00",
		"2024-01-15,MUEBLERIA CENTRO,1200.00,800.00,100.00,4/12,0.0%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCSVWriterWithoutOptionalSections(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "# Bank") {
		t.Error("metadata rows should be omitted")
	}
	if strings.Contains(out, "MUEBLERIA") {
		t.Error("installment rows should be omitted")
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONWriter{}
	if err := w.Write(&buf, sampleStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.Statement
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Movements) != 2 {
		t.Errorf("got %d movements, want 2", len(decoded.Movements))
	}
	if decoded.Metadata.Bank != "BBVA" {
		t.Errorf("bank: got %q", decoded.Metadata.Bank)
	}
}
