// Package gst implements the GST computation kernel: statutory rate
// validation, region classification, per-line tax splitting and invoice
// aggregation. Every function is pure and safe for concurrent use; money
// and rates are decimal end to end.
package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StandardRates is the statutory GST rate schedule, in percent.
// The schedule is owned by the kernel and is not configurable.
var StandardRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.RequireFromString("0.25"),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// RateCheck is the advisory verdict on a GST percentage. An out-of-range
// rate is reported as data, not as an error, because rate selection is a
// UI concern rather than a transactional one.
type RateCheck struct {
	Valid    bool   `json:"is_valid"`
	Standard bool   `json:"is_standard"`
	Message  string `json:"message,omitempty"`
}

// ValidateRate checks a GST percentage against the statutory schedule.
func ValidateRate(rate decimal.Decimal) RateCheck {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return RateCheck{
			Valid:   false,
			Message: "gst rate must be between 0 and 100",
		}
	}

	for _, std := range StandardRates {
		if rate.Equal(std) {
			return RateCheck{Valid: true, Standard: true}
		}
	}

	return RateCheck{
		Valid:   true,
		Message: fmt.Sprintf("%s%% is not a standard GST rate", rate.String()),
	}
}
