package display

import "github.com/coudpouss/coudpouss-api/internal/format"

// DateOutput for POST /display/date
type DateOutput struct {
	Body struct {
		Date string `json:"date" doc:"Formatted date, empty when the value is not a date" example:"05 Mar 2025"`
		Time string `json:"time" doc:"24 hour clock time"                                  example:"14:30"`
	}
}

// NumberOutput for POST /display/number
type NumberOutput struct {
	Body struct {
		Formatted string `json:"formatted" doc:"Formatted amount" example:"1,234.50"`
	}
}

// CancellationQuote pairs the computed breakdown with its display strings.
type CancellationQuote struct {
	Breakdown format.CancellationBreakdown `json:"breakdown"`
	Display   format.CancellationDisplay   `json:"display"`
}

// CancellationQuoteOutput for POST /bookings/cancellation-quote
type CancellationQuoteOutput struct {
	Body CancellationQuote
}
