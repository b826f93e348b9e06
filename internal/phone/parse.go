// Package phone turns free-form phone text into country code / national
// number pairs.
//
// Two independent normalizers live here. ParseMobile is a whitelist-based
// splitter used for login identifiers and stored profiles. NormalizePhone is
// backed by libphonenumber metadata and is used when creating identity
// provider accounts. They are not guaranteed to agree on the same input and
// neither calls the other.
package phone

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultCountryCode is applied to bare 10-digit numbers.
const DefaultCountryCode = "+91"

// DefaultCountryCodes is the calling-code whitelist tried for "+" prefixed input.
var DefaultCountryCodes = []string{"1", "44", "91", "61", "81"}

const localNumberLength = 10

// NormalizedPhone is a parsed country code and digits-only national number.
type NormalizedPhone struct {
	CountryCode string `json:"countryCode" doc:"Country calling code with leading +" example:"+91"`
	Mobile      string `json:"mobile"      doc:"National number, digits only"         example:"9876543210"`
}

// E164 returns the number in E.164 form.
func (p NormalizedPhone) E164() string {
	return p.CountryCode + p.Mobile
}

// Parser splits phone strings using a whitelist of calling codes.
type Parser struct {
	codes              []string
	defaultCountryCode string
}

// Option configures a Parser.
type Option func(*Parser)

// WithDefaultCountryCode sets the code applied to bare 10-digit numbers.
// The leading + is optional. An empty code disables the default.
func WithDefaultCountryCode(code string) Option {
	return func(p *Parser) {
		code = strings.TrimSpace(code)
		if code != "" && !strings.HasPrefix(code, "+") {
			code = "+" + code
		}
		p.defaultCountryCode = code
	}
}

// WithCountryCodes replaces the calling-code whitelist.
func WithCountryCodes(codes ...string) Option {
	return func(p *Parser) {
		p.codes = make([]string, 0, len(codes))
		for _, c := range codes {
			c = strings.TrimPrefix(strings.TrimSpace(c), "+")
			if c != "" {
				p.codes = append(p.codes, c)
			}
		}
	}
}

// NewParser creates a Parser with the default whitelist and default country code.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		codes:              slices.Clone(DefaultCountryCodes),
		defaultCountryCode: DefaultCountryCode,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Longest first so that a short code never shadows a longer one sharing
	// its prefix. The stable sort keeps whitelist order for equal lengths.
	slices.SortStableFunc(p.codes, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	return p
}

var defaultParser = NewParser()

// DefaultParser returns the parser used by the package-level helpers.
func DefaultParser() *Parser {
	return defaultParser
}

// DefaultCountryCode returns the code applied to bare 10-digit numbers.
func (p *Parser) DefaultCountryCode() string {
	return p.defaultCountryCode
}

// ParseMobile splits raw into a country code and national number. Spaces and
// hyphens are ignored. It reports false when raw cannot be parsed.
func (p *Parser) ParseMobile(raw string) (NormalizedPhone, bool) {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(raw)

	if rest, ok := strings.CutPrefix(cleaned, "+"); ok {
		for _, code := range p.codes {
			national, found := strings.CutPrefix(rest, code)
			if found && isDigits(national) {
				return NormalizedPhone{CountryCode: "+" + code, Mobile: national}, true
			}
		}
		return NormalizedPhone{}, false
	}

	if p.defaultCountryCode != "" && len(cleaned) == localNumberLength && isDigits(cleaned) {
		return NormalizedPhone{CountryCode: p.defaultCountryCode, Mobile: cleaned}, true
	}
	return NormalizedPhone{}, false
}

// ParseMobile parses raw with the default parser.
func ParseMobile(raw string) (NormalizedPhone, bool) {
	return defaultParser.ParseMobile(raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
