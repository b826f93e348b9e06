package format

import (
	"math"
	"strconv"
	"time"
)

// FreeCancellationWindow is how long before the service a consumer may
// cancel and still get the service fee back.
const FreeCancellationWindow = 48 * time.Hour

// CancellationInput describes a booking being cancelled.
type CancellationInput struct {
	ServiceFee     float64
	TotalAmount    float64
	ScheduledAt    time.Time
	Now            time.Time
	IsProfessional bool
}

// CancellationBreakdown is a snapshot of the amounts shown in the
// cancellation dialog. It is never mutated after construction.
type CancellationBreakdown struct {
	ServiceFee         float64 `json:"serviceFee"         doc:"Platform service fee"`
	TotalAmount        float64 `json:"totalAmount"        doc:"Total paid for the booking"`
	TotalRefund        float64 `json:"totalRefund"        doc:"Amount refunded to the consumer"`
	HoursBeforeService float64 `json:"hoursBeforeService" doc:"Hours between now and the service start, floored at zero"`
	IsWithin48Hours    bool    `json:"isWithin48Hours"    doc:"Whether the cancellation falls inside the 48 hour window"`
	IsProfessional     bool    `json:"isProfessional"     doc:"Whether the professional is cancelling"`
}

// NewCancellationBreakdown computes the refund for a cancellation. A
// professional cancelling always refunds the full amount. A consumer
// cancelling inside the window forfeits the service fee.
func NewCancellationBreakdown(in CancellationInput) CancellationBreakdown {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	hours := max(in.ScheduledAt.Sub(now).Hours(), 0)
	within := hours < FreeCancellationWindow.Hours()

	refund := in.TotalAmount
	if within && !in.IsProfessional {
		refund = max(in.TotalAmount-in.ServiceFee, 0)
	}

	return CancellationBreakdown{
		ServiceFee:         in.ServiceFee,
		TotalAmount:        in.TotalAmount,
		TotalRefund:        refund,
		HoursBeforeService: hours,
		IsWithin48Hours:    within,
		IsProfessional:     in.IsProfessional,
	}
}

// CancellationDisplay holds the formatted strings of a breakdown.
type CancellationDisplay struct {
	ServiceFee         string `json:"serviceFee"         example:"12.50"`
	TotalAmount        string `json:"totalAmount"        example:"1,250.00"`
	TotalRefund        string `json:"totalRefund"        example:"1,237.50"`
	HoursBeforeService string `json:"hoursBeforeService" example:"36"`
}

// Display formats the breakdown. Hours are shown as whole hours.
func (b CancellationBreakdown) Display(opts ...NumberOption) CancellationDisplay {
	return CancellationDisplay{
		ServiceFee:         FormatDisplayNumber(b.ServiceFee, opts...),
		TotalAmount:        FormatDisplayNumber(b.TotalAmount, opts...),
		TotalRefund:        FormatDisplayNumber(b.TotalRefund, opts...),
		HoursBeforeService: strconv.FormatInt(int64(math.Floor(b.HoursBeforeService)), 10),
	}
}
