package barcode

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ScanResult is the structured interpretation of one raw scanner read.
// String fields are empty when the matched format did not yield them;
// PricePerTicket is zero when no price was recognized.
type ScanResult struct {
	RawInput       string          `json:"rawInput"`
	IsValid        bool            `json:"isValid"`
	TicketNumber   string          `json:"ticketNumber,omitempty"`
	BookNumber     string          `json:"bookNumber,omitempty"`
	GameNumber     string          `json:"gameNumber,omitempty"`
	GameName       string          `json:"gameName,omitempty"`
	PricePerTicket decimal.Decimal `json:"pricePerTicket,omitempty"`
	TicketKind     string          `json:"ticketKind,omitempty"`
	ErrorDetail    string          `json:"errorDetail,omitempty"`
}

// HasPrice reports whether a price was recognized in the scan.
func (r ScanResult) HasPrice() bool {
	return r.PricePerTicket.IsPositive()
}

// A strategy inspects the trimmed input and, when its preconditions hold,
// fills the result and reports a match. Strategies run in table order and
// the first match is terminal, so precedence lives in the table, not in
// the strategies themselves.
type strategy struct {
	name  string
	apply func(trimmed string, r *ScanResult) bool
}

var strategies = []strategy{
	{"fixed-position", parseFixedPosition},
	{"delimited", parseDelimited},
	{"key-value", parseKeyValue},
	{"freeform", parseFreeform},
}

// Interpret converts a raw scanner string into a ScanResult. It never
// panics and never reports failure out-of-band: the only invalid results
// are empty input and a key-value payload that named no ticket or book.
// The final freeform strategy accepts any other non-empty input, so a
// caller that needs stricter validation should treat TicketNumber equal
// to the whole trimmed input as a low-confidence read.
func Interpret(rawInput string) ScanResult {
	result := ScanResult{RawInput: rawInput}

	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		result.ErrorDetail = "Empty barcode data"
		return result
	}

	for _, s := range strategies {
		if s.apply(trimmed, &result) {
			return result
		}
	}
	// Unreachable: the freeform strategy matches everything.
	return result
}

// parseFixedPosition decodes the all-digit Data Matrix layout printed on
// scratch tickets: GGG P BBBBBB TTT followed by an unused tail.
func parseFixedPosition(trimmed string, r *ScanResult) bool {
	digits := stripSpaces(trimmed)
	if len(digits) < 13 || !allDigits(digits) {
		return false
	}

	r.GameNumber = digits[0:3]
	_ = digits[3:4] // prefix digit, not carried into the result
	r.BookNumber = digits[4:10]
	r.TicketNumber = digits[10:13]
	r.GameName = "Game " + r.GameNumber
	r.TicketKind = "lottery"
	r.IsValid = true
	return true
}

// parseDelimited splits on the first recognized delimiter, checked in
// fixed priority order. Segments are positional: ticket, book, price, name.
func parseDelimited(trimmed string, r *ScanResult) bool {
	var delim string
	for _, d := range []string{"|", "~", "^"} {
		if strings.Contains(trimmed, d) {
			delim = d
			break
		}
	}
	if delim == "" {
		return false
	}

	parts := strings.Split(trimmed, delim)
	r.TicketNumber = parts[0]
	if r.TicketNumber == "" {
		r.TicketNumber = trimmed
	}
	if len(parts) > 1 {
		r.BookNumber = parts[1]
	}
	if len(parts) > 2 {
		r.PricePerTicket = parsePrice(parts[2])
	}
	if len(parts) > 3 {
		r.GameName = parts[3]
	}
	r.IsValid = true
	return true
}

// parseKeyValue handles "BOOK=123;GAME=...;COST=5.00" payloads. Keys match
// by substring, so scanner variants like "TICKETNUM" still land. This is
// the one non-empty input shape that can come back invalid: a payload
// whose pairs named neither a ticket nor a book.
func parseKeyValue(trimmed string, r *ScanResult) bool {
	if !strings.Contains(trimmed, "=") || !strings.Contains(trimmed, ";") {
		return false
	}

	for _, pair := range strings.Split(trimmed, ";") {
		key, value, _ := strings.Cut(pair, "=")
		upperKey := strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if strings.Contains(upperKey, "BOOK") {
			r.BookNumber = value
		}
		if strings.Contains(upperKey, "GAME") {
			r.GameName = value
		}
		if strings.Contains(upperKey, "COST") || strings.Contains(upperKey, "PRICE") {
			r.PricePerTicket = parsePrice(value)
		}
		if strings.Contains(upperKey, "TICKET") || strings.Contains(upperKey, "NUM") {
			r.TicketNumber = value
		}
	}

	r.IsValid = r.TicketNumber != "" || r.BookNumber != ""
	return true
}

var (
	numericTokenRe = regexp.MustCompile(`\d+\.?\d*`)
	currencyRe     = regexp.MustCompile(`\d+\.\d{2}`)
)

// parseFreeform is the terminal catch-all: the whole trimmed input becomes
// the ticket number, and a currency-looking token (two digits after the
// decimal point) becomes the price if one appears anywhere in the input.
func parseFreeform(trimmed string, r *ScanResult) bool {
	r.TicketNumber = trimmed
	if numericTokenRe.MatchString(trimmed) {
		if tok := currencyRe.FindString(trimmed); tok != "" {
			r.PricePerTicket = parsePrice(tok)
		}
	}
	r.IsValid = true
	if r.TicketKind == "" {
		r.TicketKind = "lottery"
	}
	return true
}

// parsePrice strips everything but digits and the decimal point, then
// parses the remainder. A failed parse or a zero value both yield the
// zero decimal, which the rest of the system reads as "no price".
func parsePrice(s string) decimal.Decimal {
	var b strings.Builder
	for _, c := range s {
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteRune(c)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}
	}
	return d
}

func stripSpaces(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, s)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// FormatForDisplay renders the populated fields of a scan as a pipe-joined
// label list for the scan screen. An entirely empty result falls back to
// echoing the raw input.
func FormatForDisplay(r ScanResult) string {
	var parts []string
	if r.GameNumber != "" {
		parts = append(parts, "Game #: "+r.GameNumber)
	}
	if r.BookNumber != "" {
		parts = append(parts, "Book #: "+r.BookNumber)
	}
	if r.GameName != "" {
		parts = append(parts, "Game: "+r.GameName)
	}
	if r.HasPrice() {
		parts = append(parts, "Cost: $"+r.PricePerTicket.StringFixed(2))
	}
	if r.TicketNumber != "" {
		parts = append(parts, "Ticket #: "+r.TicketNumber)
	}
	if len(parts) == 0 {
		return r.RawInput
	}
	return strings.Join(parts, " | ")
}
