// Package locale converts the Spanish date tokens and peso-formatted
// amounts found in Mexican credit-card statements into canonical forms.
package locale

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormatError reports a date token that does not match the
// DD-MMM-YYYY shape or names an unknown Spanish month abbreviation.
type DateFormatError struct {
	Token string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("malformed statement date %q", e.Token)
}

// NumberFormatError reports a string that could not be parsed as a
// two-decimal currency amount.
type NumberFormatError struct {
	Token string
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("malformed currency amount %q", e.Token)
}

// spanishMonths maps statement month abbreviations to their English
// equivalents so the token can be handed to time.Parse.
var spanishMonths = map[string]string{
	"ENE": "Jan",
	"FEB": "Feb",
	"MAR": "Mar",
	"ABR": "Apr",
	"MAY": "May",
	"JUN": "Jun",
	"JUL": "Jul",
	"AGO": "Aug",
	"SEP": "Sep",
	"OCT": "Oct",
	"NOV": "Nov",
	"DIC": "Dec",
}

// datePattern matches the fixed DD-MMM-YYYY token used throughout the
// statement, e.g. "15-ENE-2024".
var datePattern = regexp.MustCompile(`^(\d{2})-([A-ZÑ]{3})-(\d{4})$`)

// ParseSpanishDate converts a DD-MMM-YYYY token with a Spanish month
// abbreviation into a calendar date.
func ParseSpanishDate(token string) (time.Time, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	m := datePattern.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, &DateFormatError{Token: token}
	}
	month, ok := spanishMonths[m[2]]
	if !ok {
		return time.Time{}, &DateFormatError{Token: token}
	}
	t, err := time.Parse("02-Jan-2006", m[1]+"-"+month+"-"+m[3])
	if err != nil {
		return time.Time{}, &DateFormatError{Token: token}
	}
	return t, nil
}

// currencyPattern requires exactly two fractional digits after any
// thousands separators have been stripped.
var currencyPattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// ParseCurrency converts a statement amount like "$1,234.56", "+$12.00"
// or "-500.00" into a positive decimal. The sign is stripped: movement
// direction is carried by the line pattern that matched, not the glyph.
func ParseCurrency(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimLeft(cleaned, "+-")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if !currencyPattern.MatchString(cleaned) {
		return decimal.Decimal{}, &NumberFormatError{Token: s}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &NumberFormatError{Token: s}
	}
	return d, nil
}
