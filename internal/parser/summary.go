// Package parser extracts structured data from the text of a Mexican
// bank credit-card statement: the aggregate summary block, the itemized
// movement ledger and any "meses sin intereses" installment records.
//
// The layout is semi-structured PDF-extracted text, so every extractor
// here is pattern-based and tolerant: unparseable tokens are skipped,
// never fatal.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finclaro/statement-analyzer/internal/locale"
	"github.com/finclaro/statement-analyzer/internal/models"
)

// AnchorNotFoundError reports that the summary block's start anchor is
// absent. Callers recover by falling back to the label strategy.
type AnchorNotFoundError struct {
	Anchor string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("summary anchor %q not found in statement text", e.Anchor)
}

// Anchors delimiting the "resumen de cargos y abonos" block in the
// fixed statement layout. Matching is case-insensitive because some
// extraction paths fold the heading case.
const (
	summaryStartAnchor = "RESUMEN DE CARGOS Y ABONOS"
	summaryEndAnchor   = "DESGLOSE DE MOVIMIENTOS"
)

// summaryLabels maps a lowercase Spanish label substring to the summary
// field it announces. The label strategy matches these against
// normalized statement lines; the field's amount is on the next line.
var summaryLabels = map[string]models.SummaryField{
	"saldo anterior":                 models.FieldPreviousBalance,
	"cargos regulares":               models.FieldRegularCharges,
	"compras a meses":                models.FieldInstallmentPurchases,
	"intereses del periodo":          models.FieldInterestAmount,
	"comisiones":                     models.FieldCommissionAmount,
	"iva de intereses y comisiones":  models.FieldTaxInterestCommission,
	"pagos y abonos":                 models.FieldPaymentsAndCredits,
	"pago para no generar intereses": models.FieldPaymentToAvoidInterest,
}

// labelNeedles orders the label substrings longest first so the most
// specific label wins: "comisiones" is a substring of "iva de
// intereses y comisiones", and an IVA line must never resolve the
// commission field.
var labelNeedles = func() []string {
	needles := make([]string, 0, len(summaryLabels))
	for n := range summaryLabels {
		needles = append(needles, n)
	}
	sort.Slice(needles, func(i, j int) bool {
		if len(needles[i]) != len(needles[j]) {
			return len(needles[i]) > len(needles[j])
		}
		return needles[i] < needles[j]
	})
	return needles
}()

// SummaryStrategy selects how the summary block is located.
type SummaryStrategy int

const (
	// StrategyPositional anchors on the block headings and assigns
	// numeric tokens to fields by position. Fast, layout-dependent.
	StrategyPositional SummaryStrategy = iota
	// StrategyLabel matches field labels line by line. Survives layout
	// drift as long as the label wording is stable.
	StrategyLabel
)

// ExtractSummary runs the given strategy over the statement text and
// returns the fields it could resolve. The map only contains resolved
// fields; absent keys mean unresolved.
func ExtractSummary(text string, strategy SummaryStrategy) map[models.SummaryField]models.FieldValue {
	switch strategy {
	case StrategyLabel:
		return extractSummaryByLabels(text)
	default:
		fields, err := extractSummaryPositional(text)
		if err != nil {
			// Start anchor missing: soft failure, nothing resolved.
			return map[models.SummaryField]models.FieldValue{}
		}
		return fields
	}
}

// ExtractSummaryAuto tries the positional strategy first and falls back
// to label matching when it resolves nothing.
func ExtractSummaryAuto(text string) map[models.SummaryField]models.FieldValue {
	for _, s := range []SummaryStrategy{StrategyPositional, StrategyLabel} {
		if fields := ExtractSummary(text, s); len(fields) > 0 {
			return fields
		}
	}
	return map[models.SummaryField]models.FieldValue{}
}

// extractSummaryPositional takes the text strictly between the block
// anchors (end-of-text when the end anchor is missing), collects every
// decimal-looking token in order of appearance and assigns the first
// eight to the fixed field order.
func extractSummaryPositional(text string) (map[models.SummaryField]models.FieldValue, error) {
	// Numeric tokens are case-less, so anchor search and token scan can
	// both run over the upper-cased text.
	upper := strings.ToUpper(text)
	start := strings.Index(upper, summaryStartAnchor)
	if start < 0 {
		return nil, &AnchorNotFoundError{Anchor: summaryStartAnchor}
	}
	block := upper[start+len(summaryStartAnchor):]
	if end := strings.Index(block, summaryEndAnchor); end >= 0 {
		block = block[:end]
	}

	fields := make(map[models.SummaryField]models.FieldValue)
	tokens := amountTokenPattern.FindAllString(block, -1)
	i := 0
	for _, tok := range tokens {
		if i >= len(models.SummaryFields) {
			break
		}
		amt, err := locale.ParseCurrency(tok)
		if err != nil {
			// Malformed token, keep scanning.
			continue
		}
		fields[models.SummaryFields[i]] = models.ResolvedAmount(amt)
		i++
	}
	return fields, nil
}

// extractSummaryByLabels scans line pairs: when a line's normalized
// form contains a known field label, the next line is parsed as that
// field's amount.
func extractSummaryByLabels(text string) map[models.SummaryField]models.FieldValue {
	lines := splitLines(text)
	fields := make(map[models.SummaryField]models.FieldValue)

	for i := 0; i < len(lines)-1; i++ {
		label := normalizeLabel(lines[i])
		if label == "" {
			continue
		}
		for _, needle := range labelNeedles {
			if !strings.Contains(label, needle) {
				continue
			}
			// A line announces at most one field: the most specific
			// label that matched.
			field := summaryLabels[needle]
			if _, done := fields[field]; !done {
				if amt, err := locale.ParseCurrency(stripAmountGlyphs(lines[i+1])); err == nil {
					fields[field] = models.ResolvedAmount(amt)
				}
			}
			break
		}
	}
	return fields
}
