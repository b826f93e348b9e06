// Package format renders dates, times and amounts for display.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// DefaultDateLocale is the locale used by FormatDate.
const DefaultDateLocale = "en-GB"

const (
	dayFirstLayout   = "02 Jan 2006"
	monthFirstLayout = "Jan 02, 2006"
	clockLayout      = "15:04"
)

// Layouts tried, in order, for string dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Regions whose short date puts the month first.
var monthFirstRegions = map[string]bool{
	"US": true,
	"PH": true,
	"PR": true,
	"GU": true,
	"AS": true,
	"MP": true,
	"VI": true,
	"UM": true,
}

// timestamp is satisfied by protobuf and Firestore timestamp wrappers.
type timestamp interface {
	AsTime() time.Time
}

// FormatDate renders v as "DD Mon YYYY" using DefaultDateLocale.
func FormatDate(v any) string {
	return FormatDateLocale(v, DefaultDateLocale)
}

// FormatDateLocale renders v for the given locale. v may be a string, a
// time.Time, a *time.Time or a timestamp wrapper. Empty or unparsable input
// yields "".
func FormatDateLocale(v any, locale string) string {
	t, ok := toTime(v)
	if !ok {
		return ""
	}
	if monthFirst(locale) {
		return t.Format(monthFirstLayout)
	}
	return t.Format(dayFirstLayout)
}

// FormatTime renders timestamps as "HH:MM". Strings are returned unchanged
// and any other value yields "".
func FormatTime(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	t, ok := timestampValue(v)
	if !ok {
		return ""
	}
	return t.Format(clockLayout)
}

func toTime(v any) (time.Time, bool) {
	if s, ok := v.(string); ok {
		return ParseDate(s)
	}
	return timestampValue(v)
}

func timestampValue(v any) (time.Time, bool) {
	var t time.Time
	switch tv := v.(type) {
	case time.Time:
		t = tv
	case *time.Time:
		if tv == nil {
			return time.Time{}, false
		}
		t = *tv
	case *timestamppb.Timestamp:
		if tv == nil || tv.CheckValid() != nil {
			return time.Time{}, false
		}
		t = tv.AsTime()
	case timestamp:
		t = tv.AsTime()
	default:
		return time.Time{}, false
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate parses the string forms accepted by FormatDate.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthFirst(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	region, _ := tag.Region()
	return monthFirstRegions[region.String()]
}
