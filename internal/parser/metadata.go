package parser

import (
	"regexp"
	"strings"

	"github.com/finclaro/statement-analyzer/internal/models"
)

// Best-effort identification of the issuing bank, card product and
// customer segment. These never affect parsing; they only label the
// output.
var (
	bankPattern = regexp.MustCompile(
		`(?i)\b(BBVA|CITIBANAMEX|BANAMEX|SANTANDER|BANORTE|HSBC|SCOTIABANK|INBURSA)\b`,
	)
	cardTypePattern = regexp.MustCompile(
		`(?i)TARJETA\s+DE\s+CR[EÉ]DITO\s+([A-ZÁÉÍÓÚa-záéíóú]+)`,
	)
	segmentPattern = regexp.MustCompile(
		`(?i)SEGMENTO\s*:?\s*([A-ZÁÉÍÓÚa-záéíóú]+)`,
	)
)

// ExtractMetadata pulls statement identification details out of
// whitespace-normalized text. Every field is optional.
func ExtractMetadata(text string) models.Metadata {
	clean := whitespaceRun.ReplaceAllString(text, " ")

	var md models.Metadata
	if m := bankPattern.FindString(clean); m != "" {
		md.Bank = strings.ToUpper(m)
	}
	if m := cardTypePattern.FindStringSubmatch(clean); m != nil {
		md.CardType = strings.TrimSpace(strings.ToUpper(m[1]))
	}
	if m := segmentPattern.FindStringSubmatch(clean); m != nil {
		md.Segment = strings.ToUpper(m[1])
	}
	return md
}
