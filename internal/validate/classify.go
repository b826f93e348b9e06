// Package validate holds the input classifiers and form validators shared by
// the sign-up, login and password reset flows.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minMobileDigits = 7
	maxMobileDigits = 18
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Optional +, then digits or parenthesized groups of 1-4 digits, each
	// optionally followed by a single - or . separator.
	mobileRe = regexp.MustCompile(`^\+?(?:\(\d{1,4}\)[-.]?|\d[-.]?)+$`)
)

// IsValidEmail reports whether s has the conventional local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidMobile reports whether s looks like a phone number once whitespace
// is removed. It is a shape check, not a numbering plan lookup.
func IsValidMobile(s string) bool {
	cleaned := stripSpace(s)
	if cleaned == "" || strings.HasSuffix(cleaned, "-") || strings.HasSuffix(cleaned, ".") {
		return false
	}
	if !mobileRe.MatchString(cleaned) {
		return false
	}
	n := countDigits(cleaned)
	return n >= minMobileDigits && n <= maxMobileDigits
}

// IsValidEmailOrMobile reports whether s is either a valid email or a valid mobile number.
func IsValidEmailOrMobile(s string) bool {
	return IsValidEmail(s) || IsValidMobile(s)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func countDigits(s string) int {
	n := 0
	for i := range len(s) {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
