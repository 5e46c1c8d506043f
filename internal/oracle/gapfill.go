package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finclaro/statement-analyzer/internal/models"
)

// fieldQuestions phrases the single-field extraction instruction for
// each summary field. The oracle sees the full statement text and is
// asked to answer with just the amount.
var fieldQuestions = map[models.SummaryField]string{
	models.FieldPreviousBalance:        "el saldo anterior",
	models.FieldRegularCharges:         "el total de cargos regulares (no a meses)",
	models.FieldInstallmentPurchases:   "el total de compras a meses sin intereses",
	models.FieldInterestAmount:         "los intereses del periodo",
	models.FieldCommissionAmount:       "las comisiones del periodo",
	models.FieldTaxInterestCommission:  "el IVA de intereses y comisiones",
	models.FieldPaymentsAndCredits:     "el total de pagos y abonos",
	models.FieldPaymentToAvoidInterest: "el pago para no generar intereses",
}

// instructionFor builds the minimal natural-language request for one
// field.
func instructionFor(field models.SummaryField) string {
	return fmt.Sprintf(
		"Del siguiente estado de cuenta, extrae %s. Responde únicamente con el monto numérico.",
		fieldQuestions[field],
	)
}

// coerceAmount attempts to read the oracle's free-text reply as a
// decimal, stripping thousands separators and currency glyphs first.
func coerceAmount(reply string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// FillOptions controls which fields the gap fill queries.
type FillOptions struct {
	// All requeries every field instead of only unresolved ones. Used
	// when reconciliation flagged the summary as inconsistent.
	All bool
}

// Fill resolves summary fields through the oracle, one independent
// request per field. Numeric replies become amounts; non-numeric
// replies are retained verbatim as degraded values. A failed call is
// recorded per field and never aborts the remaining fields.
func Fill(ctx context.Context, o Oracle, summary *models.Summary, statementText string, opts FillOptions) {
	var fields []models.SummaryField
	if opts.All {
		fields = models.SummaryFields
	} else {
		fields = summary.UnresolvedFields()
	}

	for _, field := range fields {
		reply, err := o.Ask(ctx, instructionFor(field), statementText)
		if err != nil {
			if summary.OracleErrors == nil {
				summary.OracleErrors = make(map[models.SummaryField]string)
			}
			summary.OracleErrors[field] = err.Error()
			continue
		}
		if amt, ok := coerceAmount(reply); ok {
			summary.Fields[field] = models.ResolvedAmount(amt)
		} else {
			summary.Fields[field] = models.RawValue(reply)
		}
	}
}
