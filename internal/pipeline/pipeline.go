// Package pipeline runs the full statement analysis: the three local
// extractors over the same text, reconciliation of summary against
// movements, and the oracle gap fill for whatever stayed unresolved.
// Everything is strictly sequential; the summary is threaded through
// the stages as an explicit accumulator.
package pipeline

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finclaro/statement-analyzer/internal/models"
	"github.com/finclaro/statement-analyzer/internal/oracle"
	"github.com/finclaro/statement-analyzer/internal/parser"
	"github.com/finclaro/statement-analyzer/internal/reconcile"
)

// EmptyTextError reports that the pipeline was handed no statement
// text to analyze.
type EmptyTextError struct{}

func (e *EmptyTextError) Error() string {
	return "statement text is empty; nothing to analyze"
}

// Analyzer owns the pipeline configuration. Oracle may be nil, in
// which case unresolved fields stay unresolved.
type Analyzer struct {
	Oracle               oracle.Oracle
	Tolerance            decimal.Decimal
	RefillOnInconsistent bool
	Logger               *zap.Logger
}

// New returns an Analyzer with the default reconciliation tolerance.
func New(o oracle.Oracle, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		Oracle:    o,
		Tolerance: reconcile.DefaultTolerance,
		Logger:    logger,
	}
}

// Analyze runs the whole pipeline over one statement's text.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*models.Statement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyTextError{}
	}

	summary := models.NewSummary()
	summary.Merge(parser.ExtractSummaryAuto(text))

	movements, issues := parser.ExtractMovements(text)
	installments := parser.ExtractInstallments(text)
	metadata := parser.ExtractMetadata(text)

	reconcile.Reconcile(summary, movements, a.Tolerance)

	a.Logger.Info("statement parsed",
		zap.Int("movements", len(movements)),
		zap.Int("installments", len(installments)),
		zap.Int("unresolvedFields", len(summary.UnresolvedFields())),
		zap.Bool("consistent", summary.Consistent),
	)

	if a.Oracle != nil {
		a.gapFill(ctx, summary, text)
	}

	return &models.Statement{
		Summary:      summary,
		Movements:    movements,
		Installments: installments,
		Metadata:     metadata,
		Issues:       issues,
	}, nil
}

// gapFill asks the oracle for unresolved fields. When configured, an
// inconsistent summary causes a full requery of every field.
func (a *Analyzer) gapFill(ctx context.Context, summary *models.Summary, text string) {
	unresolved := summary.UnresolvedFields()
	requeryAll := a.RefillOnInconsistent && !summary.Consistent
	if len(unresolved) == 0 && !requeryAll {
		return
	}

	a.Logger.Info("gap filling through oracle",
		zap.Int("unresolvedFields", len(unresolved)),
		zap.Bool("requeryAll", requeryAll),
	)

	oracle.Fill(ctx, a.Oracle, summary, text, oracle.FillOptions{All: requeryAll})
	for field, msg := range summary.OracleErrors {
		a.Logger.Warn("oracle field request failed",
			zap.String("field", string(field)),
			zap.String("error", msg),
		)
	}
}
