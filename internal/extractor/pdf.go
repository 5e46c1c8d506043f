// Package extractor turns a statement PDF into the plain text the
// parsing pipeline consumes. Extraction is page by page; pages that
// yield no text contribute nothing. Scanned/image PDFs are out of
// scope: when no readable text comes out, the document is rejected.
package extractor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// EmptyDocumentError reports a PDF from which no statement text could
// be extracted. Fatal for the upload; the pipeline never runs.
type EmptyDocumentError struct {
	Path   string
	Reason string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no statement text could be extracted from %q: %s", e.Path, e.Reason)
}

// ExtractText reads a PDF file and returns the text of each page that
// produced any. Returns *EmptyDocumentError when nothing readable came
// out of any page.
func ExtractText(filePath string) ([]string, error) {
	pages, err := extractPages(filePath)
	if err != nil {
		return nil, &EmptyDocumentError{Path: filePath, Reason: err.Error()}
	}
	if !isReadableText(pages) {
		return nil, &EmptyDocumentError{
			Path:   filePath,
			Reason: "the PDF appears to be scanned or uses undecodable font encodings",
		}
	}
	return pages, nil
}

// ExtractTextCombined returns the whole document as one string, pages
// joined with newline separators. This is the form the parsers expect.
func ExtractTextCombined(filePath string) (string, error) {
	pages, err := ExtractText(filePath)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

func extractPages(filePath string) (pages []string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := pageText(page)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages, nil
}

// pageText extracts one page, preferring row-based extraction for its
// layout preservation and falling back to plain text.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}

	fontNames := page.Fonts()
	fonts := make(map[string]*pdf.Font, len(fontNames))
	for _, name := range fontNames {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// statementWords are terms present in virtually every Mexican credit
// card statement. Extracted text containing none of them is treated as
// garbage from an undecodable font.
var statementWords = []string{
	"estado de cuenta", "saldo", "cargos", "abonos", "pagos",
	"tarjeta", "movimientos", "intereses", "comisiones", "periodo",
	"fecha", "resumen",
}

// isReadableText requires a minimum amount of text, a majority of
// printable characters and at least one recognizable statement term.
func isReadableText(pages []string) bool {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if r < 0x7f && (unicode.IsPrint(r) || unicode.IsSpace(r)) {
				readable++
			}
		}
	}
	if total <= 50 {
		return false
	}
	if float64(readable)/float64(total) <= 0.6 {
		return false
	}

	combined := strings.ToLower(strings.Join(pages, " "))
	for _, w := range statementWords {
		if strings.Contains(combined, w) {
			return true
		}
	}
	return false
}
