package calculator

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formatter renders and parses operand strings for a single locale.
// The decimal point is always '.', only integer grouping is localized.
type formatter struct {
	group string
}

// groupSample is formatted by the locale to find its separator. Every
// supported locale must print it as "1<sep>234<sep>567".
const groupSample = 1234567

func newFormatter(tag language.Tag) (formatter, error) {
	p := message.NewPrinter(tag)
	sample := p.Sprint(number.Decimal(groupSample, number.MaxFractionDigits(0)))

	// Only Latin digits grouped in threes can be parsed back.
	rest, ok := strings.CutPrefix(sample, "1")
	if !ok {
		return formatter{}, ErrUnsupportedLanguage
	}
	group, _, ok := strings.Cut(rest, "234")
	if !ok || strings.ContainsAny(group, ".0123456789") {
		return formatter{}, ErrUnsupportedLanguage
	}

	f := formatter{group: group}
	if f.groupDigits(strconv.Itoa(groupSample)) != sample {
		return formatter{}, ErrUnsupportedLanguage
	}
	if v, err := f.parse(sample); err != nil || v != groupSample {
		return formatter{}, ErrUnsupportedLanguage
	}
	return f, nil
}

// format splits raw on the decimal point, groups the integer part and
// reattaches the fractional part exactly as typed.
func (f formatter) format(raw string) string {
	intPart, fracPart, hasFrac := strings.Cut(raw, ".")

	integer := f.integer(intPart)
	if hasFrac {
		return integer + "." + fracPart
	}
	return integer
}

// integer groups the shortest digits that round-trip to the parsed value,
// so 1e23 prints as 100,000,... rather than its exact binary expansion.
func (f formatter) integer(s string) string {
	v, err := f.parse(s)
	if err != nil {
		return ""
	}

	grouped := f.groupDigits(strconv.FormatFloat(math.Round(math.Abs(v)), 'f', -1, 64))
	if math.Signbit(v) {
		return "-" + grouped
	}
	return grouped
}

func (f formatter) groupDigits(digits string) string {
	if f.group == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(f.group)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// parse converts an operand string to a finite float64, ignoring grouping separators.
func (f formatter) parse(s string) (float64, error) {
	if f.group != "" {
		s = strings.ReplaceAll(s, f.group, "")
	}
	if s == "" {
		return 0, ErrInvalidOperand
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidOperand
	}
	return v, nil
}

// plain returns the shortest decimal representation of v without exponent or grouping.
func plain(v float64) string {
	// Adding zero folds negative zero into positive zero.
	return strconv.FormatFloat(v+0, 'f', -1, 64)
}
