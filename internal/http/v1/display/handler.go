// Package display renders dates, amounts and cancellation quotes the way
// the client shows them.
package display

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coudpouss/coudpouss-api/internal/format"
)

// now is replaced in tests.
var now = time.Now

// Register registers display endpoints.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "format-date",
		Method:      http.MethodPost,
		Path:        "/display/date",
		Summary:     "Format a date",
		Description: "Renders a date as DD Mon YYYY, or Mon DD, YYYY for month-first locales, plus the 24 hour time.",
		Tags:        []string{"Display"},
	}, func(_ context.Context, input *DateInput) (*DateOutput, error) {
		locale := strings.TrimSpace(input.Body.Locale)
		if locale == "" {
			locale = format.DefaultDateLocale
		}
		out := &DateOutput{}
		out.Body.Date = format.FormatDateLocale(input.Body.Value, locale)
		if t, ok := format.ParseDate(input.Body.Value); ok {
			out.Body.Time = format.FormatTime(t)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "format-number",
		Method:      http.MethodPost,
		Path:        "/display/number",
		Summary:     "Format an amount",
		Tags:        []string{"Display"},
	}, func(_ context.Context, input *NumberInput) (*NumberOutput, error) {
		var opts []format.NumberOption
		if input.Body.ShowDecimals != nil {
			opts = append(opts, format.WithDecimals(*input.Body.ShowDecimals))
		}
		if input.Body.DecimalPoints != nil {
			opts = append(opts, format.WithDecimalPoints(*input.Body.DecimalPoints))
		}
		if input.Body.Locale != "" {
			opts = append(opts, format.WithLocale(input.Body.Locale))
		}
		out := &NumberOutput{}
		out.Body.Formatted = format.FormatDisplayNumber(input.Body.Value, opts...)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "quote-cancellation",
		Method:      http.MethodPost,
		Path:        "/bookings/cancellation-quote",
		Summary:     "Quote a booking cancellation",
		Description: "Computes the refund for cancelling a booking now. Consumers cancelling within 48 hours of the service forfeit the service fee.",
		Tags:        []string{"Bookings"},
	}, func(_ context.Context, input *CancellationQuoteInput) (*CancellationQuoteOutput, error) {
		b := format.NewCancellationBreakdown(format.CancellationInput{
			ServiceFee:     input.Body.ServiceFee,
			TotalAmount:    input.Body.TotalAmount,
			ScheduledAt:    input.Body.ScheduledAt,
			Now:            now(),
			IsProfessional: input.Body.IsProfessional,
		})
		var opts []format.NumberOption
		if input.Body.Locale != "" {
			opts = append(opts, format.WithLocale(input.Body.Locale))
		}
		return &CancellationQuoteOutput{
			Body: CancellationQuote{Breakdown: b, Display: b.Display(opts...)},
		}, nil
	})
}
