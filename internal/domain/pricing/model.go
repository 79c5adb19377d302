package pricing

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// PricingPeriod is one time-boxed pricing tier, e.g. "Early Bird".
// Periods are configured in ascending expiration order; the tier is
// active until its expiration instant.
type PricingPeriod struct {
	Title           string          `json:"title"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

// IsExpired reports whether the period's expiration instant has passed
func (p PricingPeriod) IsExpired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}

// ResolveActivePeriod returns the first period whose expiration is still
// in the future, or the last period when all have expired (the final
// tier is treated as the standing price). An empty list is an invalid
// configuration.
func ResolveActivePeriod(periods []PricingPeriod, now time.Time) (*PricingPeriod, error) {
	if len(periods) == 0 {
		return nil, ierr.NewError("no pricing periods configured").
			WithHint("Pricing configuration is invalid").
			Mark(ierr.ErrValidation)
	}

	for i := range periods {
		if periods[i].ExpiresAt.After(now) {
			return &periods[i], nil
		}
	}

	return &periods[len(periods)-1], nil
}
