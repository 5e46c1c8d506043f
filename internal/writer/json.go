package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/finclaro/statement-analyzer/internal/models"
)

// JSONWriter writes the full analysis result as indented JSON.
type JSONWriter struct{}

// WriteToFile writes the statement as JSON to the given path.
func (w *JSONWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, st)
}

// Write writes the statement as JSON to the given writer.
func (w *JSONWriter) Write(out io.Writer, st *models.Statement) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("failed to encode statement: %w", err)
	}
	return nil
}
