package parser

import (
	"fmt"
	"regexp"

	"github.com/finclaro/statement-analyzer/internal/locale"
	"github.com/finclaro/statement-analyzer/internal/models"
)

// Movement line patterns. Each line carries a transaction date, a
// posting date, a free-text description and a signed peso amount. The
// movement date is the first date; the posting date is ignored.
//
// Charge:  "15-ENE-2024 16-ENE-2024 SUPERMERCADO XYZ +$123.45"
// Payment: "15-ENE-2024 16-ENE-2024 PAGO RECIBIDO -$500.00"
var (
	chargeLinePattern = regexp.MustCompile(
		`(\d{2}-[A-Z]{3}-\d{4})\s+(\d{2}-[A-Z]{3}-\d{4})\s+(.+?)\s+\+\$([\d,]+\.\d{2})`,
	)
	paymentLinePattern = regexp.MustCompile(
		`(\d{2}-[A-Z]{3}-\d{4})\s+(\d{2}-[A-Z]{3}-\d{4})\s+(PAGO.*?)\s+-\$([\d,]+\.\d{2})`,
	)
)

// ExtractMovements scans the full statement text for charge and payment
// lines and returns them as a normalized ledger. Charges and payments
// each keep their document order; the combined list is charges followed
// by payments. Records whose date cannot be normalized are excluded and
// reported as issues rather than aborting the extraction.
func ExtractMovements(text string) ([]models.Movement, []models.ParseIssue) {
	var movements []models.Movement
	var issues []models.ParseIssue

	for _, m := range chargeLinePattern.FindAllStringSubmatch(text, -1) {
		mv, err := buildMovement(m, models.MovementCharge)
		if err != nil {
			issues = append(issues, models.ParseIssue{Stage: "movements", Detail: err.Error()})
			continue
		}
		movements = append(movements, mv)
	}
	for _, m := range paymentLinePattern.FindAllStringSubmatch(text, -1) {
		mv, err := buildMovement(m, models.MovementPayment)
		if err != nil {
			issues = append(issues, models.ParseIssue{Stage: "movements", Detail: err.Error()})
			continue
		}
		movements = append(movements, mv)
	}
	return movements, issues
}

func buildMovement(m []string, typ models.MovementType) (models.Movement, error) {
	date, err := locale.ParseSpanishDate(m[1])
	if err != nil {
		return models.Movement{}, fmt.Errorf("movement %q: %w", sanitizeDescription(m[3]), err)
	}
	amount, err := locale.ParseCurrency(m[4])
	if err != nil {
		return models.Movement{}, fmt.Errorf("movement %q: %w", sanitizeDescription(m[3]), err)
	}
	return models.Movement{
		Date:        date,
		Description: sanitizeDescription(m[3]),
		Amount:      amount,
		Type:        typ,
	}, nil
}
