package display

import "time"

// DateInput for POST /display/date
type DateInput struct {
	Body struct {
		Value  string `json:"value"            doc:"Date or timestamp, RFC 3339 or YYYY-MM-DD" example:"2025-03-05T14:30:00Z"`
		Locale string `json:"locale,omitempty" doc:"BCP 47 locale, defaults to en-GB"          example:"en-US"`
	}
}

// NumberInput for POST /display/number
type NumberInput struct {
	Body struct {
		Value         float64 `json:"value"                   doc:"Amount to render"                    example:"1234.5"`
		ShowDecimals  *bool   `json:"showDecimals,omitempty"  doc:"Render fraction digits, default true" example:"true"`
		DecimalPoints *int    `json:"decimalPoints,omitempty" doc:"Fraction digits, default 2"          example:"2" minimum:"0" maximum:"20"`
		Locale        string  `json:"locale,omitempty"        doc:"BCP 47 locale, defaults to en-US"     example:"en-IN"`
	}
}

// CancellationQuoteInput for POST /bookings/cancellation-quote
type CancellationQuoteInput struct {
	Body struct {
		ServiceFee     float64   `json:"serviceFee"               doc:"Platform service fee"              example:"12.5"    minimum:"0"`
		TotalAmount    float64   `json:"totalAmount"              doc:"Total paid for the booking"        example:"1250"    minimum:"0"`
		ScheduledAt    time.Time `json:"scheduledAt"              doc:"Service start time"                example:"2025-03-05T14:30:00Z"`
		IsProfessional bool      `json:"isProfessional,omitempty" doc:"Whether the professional cancels"  example:"false"`
		Locale         string    `json:"locale,omitempty"         doc:"BCP 47 locale for amounts"         example:"en-US"`
	}
}
