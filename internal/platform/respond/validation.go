package respond

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coudpouss/coudpouss-api/internal/validate"
)

// FormError converts field errors into a 422 problem with one detail per
// field, located at body.<field>. Details are sorted by field name.
func FormError(msg string, fields validate.FormErrors) huma.StatusError {
	details := make([]error, 0, len(fields))
	for _, name := range fields.Fields() {
		details = append(details, &huma.ErrorDetail{
			Message:  fields[name],
			Location: "body." + name,
		})
	}
	return huma.Error422UnprocessableEntity(msg, details...)
}

// AsFormError reports whether err carries a *validate.Error and, if so,
// returns it as a 422 problem.
func AsFormError(err error) (huma.StatusError, bool) {
	var verr *validate.Error
	if !errors.As(err, &verr) {
		return nil, false
	}
	return FormError("validation failed", verr.Fields), true
}
