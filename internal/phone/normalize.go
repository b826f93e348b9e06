package phone

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the region assumed for numbers without a + prefix.
const DefaultRegion = "IN"

// Contact is the phone pair sent to account endpoints. Both fields are empty
// when the input could not be parsed.
type Contact struct {
	PhoneCountryCode string `json:"phone_country_code" doc:"Country calling code with leading +" example:"+91"`
	Mobile           string `json:"mobile"             doc:"National significant number"       example:"9876543210"`
}

// IsZero reports whether the contact carries no number.
func (c Contact) IsZero() bool {
	return c.PhoneCountryCode == "" && c.Mobile == ""
}

// E164 returns the number in E.164 form, or "" for a zero Contact.
func (c Contact) E164() string {
	if c.IsZero() {
		return ""
	}
	return c.PhoneCountryCode + c.Mobile
}

// NormalizePhone parses raw with libphonenumber metadata, using defaultRegion
// for numbers written without a calling code. Any failure yields a zero Contact.
func NormalizePhone(raw, defaultRegion string) Contact {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Contact{}
	}
	if defaultRegion == "" {
		defaultRegion = DefaultRegion
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil {
		return Contact{}
	}
	national := phonenumbers.GetNationalSignificantNumber(num)
	if num.GetCountryCode() == 0 || national == "" {
		return Contact{}
	}
	return Contact{
		PhoneCountryCode: "+" + strconv.Itoa(int(num.GetCountryCode())),
		Mobile:           national,
	}
}
