package profile

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/coudpouss/coudpouss-api/internal/phone"
	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
	"github.com/coudpouss/coudpouss-api/internal/validate"
)

const (
	roleConsumer     = "consumer"
	roleProfessional = "professional"
	minNameRunes     = 2
)

// normalizer applies the shared input rules of every Service implementation.
type normalizer struct {
	parser *phone.Parser
}

func newNormalizer(parser *phone.Parser) normalizer {
	if parser == nil {
		parser = phone.DefaultParser()
	}
	return normalizer{parser: parser}
}

// fields is the normalized set of values to write. A nil pointer is absent.
type fields struct {
	role, name, email, countryCode, mobile, address, bio *string
}

func ptr(s string) *string { return &s }

func (n normalizer) upsert(p UpsertParams) (fields, error) {
	var f fields
	errs := validate.FormErrors{}

	if p.Role != "" {
		if p.Role != roleConsumer && p.Role != roleProfessional {
			return fields{}, ErrInvalidRole
		}
		f.role = ptr(p.Role)
	}
	if s := strings.TrimSpace(p.Name); s != "" {
		n.name(s, &f, errs)
	}
	if s := strings.TrimSpace(p.Email); s != "" {
		n.email(s, &f, errs)
	}
	if s := strings.TrimSpace(p.Mobile); s != "" {
		n.mobile(s, &f, errs)
	}
	if s := strings.TrimSpace(p.Address); s != "" {
		f.address = ptr(s)
	}
	if s := strings.TrimSpace(p.Bio); s != "" {
		f.bio = ptr(s)
	}
	return f, asError(errs)
}

func (n normalizer) update(p UpdateParams) (fields, error) {
	var f fields
	errs := validate.FormErrors{}

	if p.Name != nil {
		n.name(strings.TrimSpace(*p.Name), &f, errs)
	}
	if p.Email != nil {
		n.email(strings.TrimSpace(*p.Email), &f, errs)
	}
	if p.Mobile != nil {
		if s := strings.TrimSpace(*p.Mobile); s == "" {
			f.countryCode, f.mobile = ptr(""), ptr("")
		} else {
			n.mobile(s, &f, errs)
		}
	}
	if p.Address != nil {
		f.address = ptr(strings.TrimSpace(*p.Address))
	}
	if p.Bio != nil {
		f.bio = ptr(strings.TrimSpace(*p.Bio))
	}
	return f, asError(errs)
}

func (n normalizer) name(s string, f *fields, errs validate.FormErrors) {
	switch {
	case s == "":
		errs[validate.FieldName] = validate.MsgRequired
	case utf8.RuneCountInString(s) < minNameRunes:
		errs[validate.FieldName] = validate.MsgNameTooShort
	default:
		f.name = ptr(s)
	}
}

func (n normalizer) email(s string, f *fields, errs validate.FormErrors) {
	switch {
	case s == "":
		errs[validate.FieldEmail] = validate.MsgRequired
	case !validate.IsValidEmail(s):
		errs[validate.FieldEmail] = validate.MsgInvalidEmail
	default:
		f.email = ptr(strings.ToLower(s))
	}
}

func (n normalizer) mobile(s string, f *fields, errs validate.FormErrors) {
	parsed, ok := n.parser.ParseMobile(s)
	if !ok {
		errs[validate.FieldMobileNo] = validate.MsgInvalidMobile
		return
	}
	f.countryCode, f.mobile = ptr(parsed.CountryCode), ptr(parsed.Mobile)
}

func asError(errs validate.FormErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return &validate.Error{Fields: errs}
}

// apply copies the present fields onto p.
func (f fields) apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Role, f.role)
	set(&p.Name, f.name)
	set(&p.Email, f.email)
	set(&p.PhoneCountryCode, f.countryCode)
	set(&p.Mobile, f.mobile)
	set(&p.Address, f.address)
	set(&p.Bio, f.bio)
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, validate.ErrInvalid), errors.Is(err, ErrInvalidRole):
		return "invalid_input"
	default:
		return "internal_error"
	}
}

func auditEvent(action, userID string) logging.AuditEvent {
	return logging.AuditEvent{Action: action, UserID: userID, Resource: "profile", ResourceID: userID}
}
