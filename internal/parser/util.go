package parser

import (
	"regexp"
	"strings"
)

// amountTokenPattern matches decimal-looking monetary tokens as they
// appear in the statement body: optional thousands commas, exactly two
// fractional digits. E.g. "1,234.56" or "25.99".
var amountTokenPattern = regexp.MustCompile(`[\d,]+\.\d{2}`)

// parentheticalPattern strips notes like "(1)" or "(ver reverso)" that
// some layouts append to field labels.
var parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

// whitespaceRun collapses repeated spaces/tabs left behind by PDF text
// extraction.
var whitespaceRun = regexp.MustCompile(`\s+`)

// sanitizeDescription replaces every non-printable-ASCII character with
// a space and collapses whitespace runs. Statement PDFs occasionally
// embed stray glyphs inside merchant names.
func sanitizeDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}

// normalizeLabel prepares a statement line for label matching: drop
// parenthetical notes and embedded digits, lowercase the rest.
func normalizeLabel(line string) string {
	line = parentheticalPattern.ReplaceAllString(line, "")
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// stripAmountGlyphs removes the currency symbol and sign glyphs from a
// candidate value line before numeric parsing.
func stripAmountGlyphs(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "+-")
	s = strings.ReplaceAll(s, "$", "")
	return strings.TrimSpace(s)
}

// splitLines breaks statement text into trimmed lines, preserving empty
// lines so fixed-window extractors see the original line spacing.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
