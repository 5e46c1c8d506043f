// Package api exposes the statement analyzer over HTTP: one multipart
// upload endpoint returning the full analysis as JSON.
package api

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finclaro/statement-analyzer/internal/extractor"
	"github.com/finclaro/statement-analyzer/internal/models"
	"github.com/finclaro/statement-analyzer/internal/pipeline"
)

const version = "1.0.0"

// AnalyzeResponse is the JSON envelope for /api/analyze.
type AnalyzeResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Statement *models.Statement `json:"statement,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// Handler wires the pipeline into fiber routes.
type Handler struct {
	Analyzer *pipeline.Analyzer
	Logger   *zap.Logger
}

// Register sets up the API routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// HandleAnalyze accepts either a PDF upload in the "file" form field or
// pre-extracted statement text in the "text" field.
func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	log := h.Logger.With(zap.String("requestId", requestID))

	text := strings.TrimSpace(c.FormValue("text"))
	if text == "" {
		extracted, status, msg := h.extractUpload(c)
		if msg != "" {
			log.Warn("statement upload rejected", zap.String("reason", msg))
			return writeError(c, status, requestID, msg)
		}
		text = extracted
	}

	statement, err := h.Analyzer.Analyze(c.Context(), text)
	if err != nil {
		var ete *pipeline.EmptyTextError
		if errors.As(err, &ete) {
			return writeError(c, fiber.StatusUnprocessableEntity, requestID, err.Error())
		}
		log.Error("analysis failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, requestID, err.Error())
	}

	log.Info("statement analyzed",
		zap.Int("movements", len(statement.Movements)),
		zap.Int("installments", len(statement.Installments)),
		zap.Bool("consistent", statement.Summary.Consistent),
	)

	return c.JSON(AnalyzeResponse{
		Success:   true,
		RequestID: requestID,
		Statement: statement,
		Version:   version,
	})
}

// extractUpload saves the uploaded PDF to a temp file and extracts its
// text. Returns a non-empty message (with an HTTP status) on failure.
func (h *Handler) extractUpload(c *fiber.Ctx) (text string, status int, msg string) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", fiber.StatusBadRequest, "no file uploaded; use form field 'file' or provide 'text'"
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return "", fiber.StatusBadRequest, "only PDF files are supported"
	}

	tmp, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return "", fiber.StatusInternalServerError, "failed to create temp file"
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := c.SaveFile(fh, tmp.Name()); err != nil {
		return "", fiber.StatusInternalServerError, "failed to save uploaded file"
	}

	combined, err := extractor.ExtractTextCombined(tmp.Name())
	if err != nil {
		var ede *extractor.EmptyDocumentError
		if errors.As(err, &ede) {
			return "", fiber.StatusUnprocessableEntity, err.Error()
		}
		return "", fiber.StatusInternalServerError, err.Error()
	}
	return combined, 0, ""
}

func writeError(c *fiber.Ctx, status int, requestID, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{
		Success:   false,
		Error:     msg,
		RequestID: requestID,
	})
}
