// Package writer serializes analysis results for downstream tools.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/finclaro/statement-analyzer/internal/models"
)

// CSVWriter writes the movement ledger (and optionally the installment
// plans) as CSV.
type CSVWriter struct {
	IncludeMetadata     bool
	IncludeInstallments bool
}

// WriteToFile writes the statement as CSV to the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, st)
}

// Write writes the statement as CSV to the given writer.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if w.IncludeMetadata {
		if st.Metadata.Bank != "" {
			cw.Write([]string{"# Bank", st.Metadata.Bank})
		}
		if st.Metadata.CardType != "" {
			cw.Write([]string{"# Card Type", st.Metadata.CardType})
		}
		if st.Metadata.Segment != "" {
			cw.Write([]string{"# Segment", st.Metadata.Segment})
		}
	}

	if err := cw.Write([]string{"Date", "Description", "Type", "Amount"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, m := range st.Movements {
		row := []string{
			m.Date.Format("2006-01-02"),
			m.Description,
			string(m.Type),
			m.Amount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if !w.IncludeInstallments || len(st.Installments) == 0 {
		return nil
	}

	cw.Write([]string{""})
	if err := cw.Write([]string{"Date", "Description", "Original", "Pending", "Payment", "Number", "Rate"}); err != nil {
		return fmt.Errorf("failed to write installment header: %w", err)
	}
	for _, r := range st.Installments {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Description,
			r.OriginalAmount.StringFixed(2),
			r.PendingBalance.StringFixed(2),
			r.PaymentRequired.StringFixed(2),
			r.PaymentNumber,
			r.InterestRate,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write installment row: %w", err)
		}
	}
	return nil
}
