package format

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultNumberLocale is the locale used for amounts unless overridden.
const DefaultNumberLocale = "en-US"

// maxSafeInteger is the largest integer a float64 represents exactly.
const maxSafeInteger = 1<<53 - 1

type numberOptions struct {
	showDecimals  bool
	decimalPoints int
	locale        language.Tag
}

// NumberOption configures FormatDisplayNumber.
type NumberOption func(*numberOptions)

// WithoutDecimals renders amounts with no fraction digits.
func WithoutDecimals() NumberOption {
	return func(o *numberOptions) {
		o.showDecimals = false
	}
}

// WithDecimals toggles fraction digits.
func WithDecimals(show bool) NumberOption {
	return func(o *numberOptions) {
		o.showDecimals = show
	}
}

// WithDecimalPoints sets the number of fraction digits. Negative values are
// treated as zero.
func WithDecimalPoints(n int) NumberOption {
	return func(o *numberOptions) {
		o.decimalPoints = max(n, 0)
	}
}

// WithLocale sets the BCP 47 locale used for grouping and separators.
// Unknown locales are ignored.
func WithLocale(locale string) NumberOption {
	return func(o *numberOptions) {
		if tag, err := language.Parse(locale); err == nil {
			o.locale = tag
		}
	}
}

// FormatDisplayNumber renders value for display. Go integer kinds are
// formatted as-is; everything else, whole floats included, is coerced to
// float64 and gets the decimal options. Non-finite or unusable values
// render as "0" and magnitudes beyond 2^53-1 fall back to exponent notation.
func FormatDisplayNumber(value any, opts ...NumberOption) string {
	o := numberOptions{
		showDecimals:  true,
		decimalPoints: 2,
		locale:        language.MustParse(DefaultNumberLocale),
	}
	for _, opt := range opts {
		opt(&o)
	}
	p := message.NewPrinter(o.locale)

	if i, ok := integerValue(value); ok {
		return p.Sprintf("%v", number.Decimal(i))
	}
	if u, ok := unsignedValue(value); ok {
		return p.Sprintf("%v", number.Decimal(u))
	}

	f, ok := floatValue(value)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	if math.Abs(f) > maxSafeInteger {
		return strconv.FormatFloat(f, 'e', o.decimalPoints, 64)
	}

	scale := 0
	if o.showDecimals {
		scale = o.decimalPoints
	}
	f = roundHalfAway(f, scale)
	return p.Sprintf("%v", number.Decimal(f, number.Scale(scale)))
}

func integerValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	}
	return 0, false
}

func unsignedValue(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint64:
		return n, true
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// roundHalfAway rounds half away from zero. Results that round to zero are
// returned unsigned so displays never show "-0.00".
func roundHalfAway(f float64, scale int) float64 {
	pow := math.Pow10(scale)
	r := math.Round(f*pow) / pow
	if r == 0 {
		return 0
	}
	return r
}
