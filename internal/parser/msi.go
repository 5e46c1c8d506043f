package parser

import (
	"regexp"

	"github.com/finclaro/statement-analyzer/internal/locale"
	"github.com/finclaro/statement-analyzer/internal/models"
)

// Installment plan entries ("meses sin intereses") appear as seven
// consecutive lines with no record delimiter:
//
//	15-ENE-2024        date
//	MUEBLERIA CENTRO   description
//	$12,000.00         original amount
//	$8,000.00          pending balance
//	$1,000.00          payment required this period
//	4/12               payment number
//	0.0%               interest rate
//
// Because nothing marks record boundaries the extractor slides a
// 7-line window over the text, attempting a full parse at every
// position and advancing one line at a time regardless of outcome.
// Overlapping or spurious matches are an accepted property of the
// source format.

// paymentNumberPattern matches the "n/m" progress field, e.g. "3/12".
var paymentNumberPattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)

const msiWindow = 7

// ExtractInstallments returns every installment record the sliding
// window could parse, in document order.
func ExtractInstallments(text string) []models.InstallmentRecord {
	lines := splitLines(text)
	var records []models.InstallmentRecord

	for i := 0; i+msiWindow <= len(lines); i++ {
		rec, ok := parseInstallmentWindow(lines[i : i+msiWindow])
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// parseInstallmentWindow attempts to read one 7-line record. Any field
// that fails to coerce rejects the whole window.
func parseInstallmentWindow(w []string) (models.InstallmentRecord, bool) {
	date, err := locale.ParseSpanishDate(w[0])
	if err != nil {
		return models.InstallmentRecord{}, false
	}
	original, err := locale.ParseCurrency(stripAmountGlyphs(w[2]))
	if err != nil {
		return models.InstallmentRecord{}, false
	}
	pending, err := locale.ParseCurrency(stripAmountGlyphs(w[3]))
	if err != nil {
		return models.InstallmentRecord{}, false
	}
	required, err := locale.ParseCurrency(stripAmountGlyphs(w[4]))
	if err != nil {
		return models.InstallmentRecord{}, false
	}
	if !paymentNumberPattern.MatchString(w[5]) {
		return models.InstallmentRecord{}, false
	}
	return models.InstallmentRecord{
		Date:            date,
		Description:     sanitizeDescription(w[1]),
		OriginalAmount:  original,
		PendingBalance:  pending,
		PaymentRequired: required,
		PaymentNumber:   w[5],
		InterestRate:    w[6],
	}, true
}
