package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/finclaro/statement-analyzer/internal/api"
	"github.com/finclaro/statement-analyzer/internal/config"
	"github.com/finclaro/statement-analyzer/internal/extractor"
	"github.com/finclaro/statement-analyzer/internal/oracle"
	"github.com/finclaro/statement-analyzer/internal/pipeline"
	"github.com/finclaro/statement-analyzer/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of processing files")
	outputFlag := flag.String("output", "", "Output JSON file path (defaults to input filename with .json extension)")
	csvFlag := flag.Bool("csv", false, "Also export the movement ledger as CSV")
	oracleFlag := flag.Bool("oracle", false, "Gap-fill unresolved summary fields through the configured oracle")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `FinClaro Statement Analyzer

Extracts the summary block, itemized movements and installment plans
from Mexican credit-card statement PDFs, reconciles the totals and
optionally gap-fills missing fields through a language-model oracle.

Usage:
  statement-analyzer [flags] <statement.pdf> [statement2.pdf ...]
  statement-analyzer -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze a statement and write statement.json
  statement-analyzer estado_de_cuenta.pdf

  # Analyze with oracle gap fill (needs ORACLE_API_KEY)
  statement-analyzer -oracle estado_de_cuenta.pdf

  # Run the upload API on $PORT
  statement-analyzer -serve
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-analyzer v%s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	analyzer := pipeline.New(nil, logger)
	analyzer.RefillOnInconsistent = cfg.RefillOnInconsistent
	if (*oracleFlag || *serveFlag) && cfg.OracleEnabled() {
		analyzer.Oracle = oracle.NewClient(
			cfg.OracleBaseURL, cfg.OracleAPIKey, cfg.OracleModel, cfg.OracleTemperature)
	} else if *oracleFlag {
		fmt.Fprintln(os.Stderr, "Warning: -oracle set but ORACLE_API_KEY is not configured; skipping gap fill.")
	}

	if *serveFlag {
		serve(cfg, analyzer, logger)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, analyzer, *outputFlag, *csvFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(cfg config.Config, analyzer *pipeline.Analyzer, logger *zap.Logger) {
	app := fiber.New(fiber.Config{
		AppName:   "statement-analyzer v" + version,
		BodyLimit: 32 << 20,
	})
	h := &api.Handler{Analyzer: analyzer, Logger: logger}
	h.Register(app)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func processFile(inputPath string, analyzer *pipeline.Analyzer, outputPath string, exportCSV bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}
	if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	text, err := extractor.ExtractTextCombined(inputPath)
	if err != nil {
		return err
	}

	statement, err := analyzer.Analyze(context.Background(), text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("  Found %d movement(s), %d installment plan(s)\n",
		len(statement.Movements), len(statement.Installments))
	if unresolved := statement.Summary.UnresolvedFields(); len(unresolved) > 0 {
		fmt.Printf("  Unresolved summary fields: %d\n", len(unresolved))
	}
	if statement.Summary.Consistent {
		fmt.Println("  Summary reconciles with the movement ledger.")
	} else {
		fmt.Printf("  Warning: summary does not reconcile (cargos diff %s, pagos diff %s)\n",
			statement.Summary.CargosDifference.StringFixed(2),
			statement.Summary.PagosDifference.StringFixed(2))
	}

	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	outPath := outputPath
	if outPath == "" {
		outPath = base + ".json"
	}

	jw := &writer.JSONWriter{}
	if err := jw.WriteToFile(outPath, statement); err != nil {
		return fmt.Errorf("JSON write failed: %w", err)
	}
	fmt.Printf("  Output: %s\n", outPath)

	if exportCSV {
		cw := &writer.CSVWriter{IncludeMetadata: true, IncludeInstallments: true}
		csvPath := base + ".csv"
		if err := cw.WriteToFile(csvPath, statement); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		fmt.Printf("  Output: %s\n", csvPath)
	}

	fmt.Println("  Done.")
	return nil
}
