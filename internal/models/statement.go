package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a ledger movement.
type MovementType string

const (
	MovementCharge  MovementType = "charge"
	MovementPayment MovementType = "payment"
)

// Movement represents a single itemized entry from the statement's
// movement section. Amount is always positive; the sign lives in Type.
type Movement struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        MovementType    `json:"type"`
}

// InstallmentRecord is one "meses sin intereses" (MSI) plan entry.
// These are extracted by a best-effort heuristic, so individual fields
// may carry garbage when the source layout drifts.
type InstallmentRecord struct {
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	PendingBalance  decimal.Decimal `json:"pendingBalance"`
	PaymentRequired decimal.Decimal `json:"paymentRequired"`
	PaymentNumber   string          `json:"paymentNumber"` // e.g. "3/12"
	InterestRate    string          `json:"interestRate"`
}

// SummaryField names one of the fixed monetary fields of the
// "resumen de cargos y abonos" block.
type SummaryField string

const (
	FieldPreviousBalance        SummaryField = "previous_balance"
	FieldRegularCharges         SummaryField = "regular_charges"
	FieldInstallmentPurchases   SummaryField = "installment_purchases"
	FieldInterestAmount         SummaryField = "interest_amount"
	FieldCommissionAmount       SummaryField = "commission_amount"
	FieldTaxInterestCommission  SummaryField = "tax_on_interest_commission"
	FieldPaymentsAndCredits     SummaryField = "payments_and_credits"
	FieldPaymentToAvoidInterest SummaryField = "payment_to_avoid_interest"
)

// SummaryFields lists every summary field in the order the amounts appear
// in the statement's summary block. The positional extraction strategy
// depends on this order.
var SummaryFields = []SummaryField{
	FieldPreviousBalance,
	FieldRegularCharges,
	FieldInstallmentPurchases,
	FieldInterestAmount,
	FieldCommissionAmount,
	FieldTaxInterestCommission,
	FieldPaymentsAndCredits,
	FieldPaymentToAvoidInterest,
}

// FieldValue holds one summary field's value. Exactly one state applies:
// resolved to an amount, degraded to raw oracle text, or unresolved.
type FieldValue struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Raw      string           `json:"raw,omitempty"`
	Resolved bool             `json:"resolved"`
}

// ResolvedAmount builds a FieldValue carrying a parsed amount.
func ResolvedAmount(d decimal.Decimal) FieldValue {
	return FieldValue{Amount: &d, Resolved: true}
}

// RawValue builds a degraded FieldValue holding the oracle's verbatim
// reply when it could not be coerced to a number.
func RawValue(s string) FieldValue {
	return FieldValue{Raw: s, Resolved: true}
}

// Unresolved is the zero field state.
func Unresolved() FieldValue {
	return FieldValue{}
}

// AmountOrZero returns the field's amount, or zero when the field is
// unresolved or degraded. Reconciliation treats missing fields as zero.
func (v FieldValue) AmountOrZero() decimal.Decimal {
	if v.Amount != nil {
		return *v.Amount
	}
	return decimal.Zero
}

// Summary accumulates the statement's aggregate totals across the
// pipeline stages: initial extraction, oracle gap fill, reconciliation.
// Every field in SummaryFields is always present in Fields.
type Summary struct {
	Fields map[SummaryField]FieldValue `json:"fields"`

	// Set by reconciliation.
	Consistent       bool            `json:"summaryConsistent"`
	CargosDifference decimal.Decimal `json:"cargosDifference"`
	PagosDifference  decimal.Decimal `json:"pagosDifference"`

	// Per-field oracle failures, keyed by field name.
	OracleErrors map[SummaryField]string `json:"oracleErrors,omitempty"`
}

// NewSummary returns a Summary with every fixed field present and
// unresolved.
func NewSummary() *Summary {
	s := &Summary{Fields: make(map[SummaryField]FieldValue, len(SummaryFields))}
	for _, f := range SummaryFields {
		s.Fields[f] = Unresolved()
	}
	return s
}

// Merge copies every resolved field of patch into s, leaving fields that
// patch did not resolve untouched. Later pipeline stages enrich the
// summary through this rather than sharing mutable state.
func (s *Summary) Merge(patch map[SummaryField]FieldValue) {
	for f, v := range patch {
		if v.Resolved {
			s.Fields[f] = v
		}
	}
}

// UnresolvedFields returns the fixed fields still lacking a value, in
// canonical order.
func (s *Summary) UnresolvedFields() []SummaryField {
	var out []SummaryField
	for _, f := range SummaryFields {
		if !s.Fields[f].Resolved {
			out = append(out, f)
		}
	}
	return out
}

// Metadata holds best-effort statement identification details.
type Metadata struct {
	Bank     string `json:"bank,omitempty"`
	CardType string `json:"cardType,omitempty"`
	Segment  string `json:"segment,omitempty"`
}

// ParseIssue records a movement or field the extractors had to drop.
type ParseIssue struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail"`
}

// Statement is the full analysis result handed to consumers.
type Statement struct {
	Summary      *Summary            `json:"summary"`
	Movements    []Movement          `json:"movements"`
	Installments []InstallmentRecord `json:"installments"`
	Metadata     Metadata            `json:"metadata"`
	Issues       []ParseIssue        `json:"issues,omitempty"`
}
