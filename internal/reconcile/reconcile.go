// Package reconcile cross-checks the statement summary's aggregate
// totals against the independently extracted movement ledger.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/finclaro/statement-analyzer/internal/models"
)

// DefaultTolerance is the fixed currency-unit threshold allowed between
// summary totals and the movement sums. It absorbs rounding and small
// fee noise; it is an absolute amount, not a percentage.
var DefaultTolerance = decimal.NewFromInt(10)

// Totals holds the movement sums by type.
type Totals struct {
	Charges  decimal.Decimal
	Payments decimal.Decimal
}

// SumMovements totals the ledger by movement type.
func SumMovements(movements []models.Movement) Totals {
	t := Totals{Charges: decimal.Zero, Payments: decimal.Zero}
	for _, m := range movements {
		switch m.Type {
		case models.MovementPayment:
			t.Payments = t.Payments.Add(m.Amount)
		default:
			t.Charges = t.Charges.Add(m.Amount)
		}
	}
	return t
}

// Reconcile compares the summary's implied totals against the movement
// sums and writes the derived consistency fields onto the summary.
// Unresolved summary fields count as zero. The three derived fields are
// always set, whatever the resolution state of the inputs.
func Reconcile(summary *models.Summary, movements []models.Movement, tolerance decimal.Decimal) {
	totals := SumMovements(movements)

	expectedCharges := summary.Fields[models.FieldRegularCharges].AmountOrZero().
		Add(summary.Fields[models.FieldInstallmentPurchases].AmountOrZero())
	expectedPayments := summary.Fields[models.FieldPaymentsAndCredits].AmountOrZero()

	summary.CargosDifference = totals.Charges.Sub(expectedCharges).Abs()
	summary.PagosDifference = totals.Payments.Sub(expectedPayments).Abs()
	summary.Consistent = summary.CargosDifference.LessThanOrEqual(tolerance) &&
		summary.PagosDifference.LessThanOrEqual(tolerance)
}
