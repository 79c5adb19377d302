package discount

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/pricing"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// DefaultCurrency is used for display when the coupon carries no currency
const DefaultCurrency = "CHF"

var hundred = decimal.NewFromInt(100)

// Discount is the combined result of a pricing tier and an optional
// coupon against a base price. Amount is in major currency units.
// Invariants: Percent <= 100, Amount <= the base price it was computed
// from.
type Discount struct {
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

// Combine merges a pricing tier's percentage discount with an optional
// coupon. Percent components add; an absolute amount-off converts from
// minor units and is re-expressed against the base price; the final
// discount is capped at 100% of the base price. The coupon is only
// consulted when applied and still usable.
func Combine(basePrice decimal.Decimal, tier pricing.PricingPeriod, c *coupon.Coupon, couponApplied bool, now time.Time) (*Discount, error) {
	if basePrice.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("base price must be positive").
			WithHint("Base price must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	totalPercent := tier.DiscountPercent
	amountOff := decimal.Zero
	currency := DefaultCurrency

	if couponApplied && c.IsUsable(now) {
		if c.PercentOff != nil {
			totalPercent = totalPercent.Add(*c.PercentOff)
		}
		amountOff = c.AmountOffMajor()
		if c.Currency != "" {
			currency = strings.ToUpper(c.Currency)
		}
	}

	percentAmount := basePrice.Mul(totalPercent).Div(hundred)
	totalAmount := percentAmount.Add(amountOff)
	effectivePercent := totalAmount.Div(basePrice).Mul(hundred)

	finalPercent := decimal.Min(effectivePercent, hundred)
	finalAmount := decimal.Min(totalAmount, basePrice)

	display := formatPercent(finalPercent)
	if amountOff.GreaterThan(decimal.Zero) {
		display = formatAmount(finalAmount, currency)
	}

	return &Discount{
		Percent: finalPercent,
		Amount:  finalAmount,
		Display: display,
	}, nil
}

// CouponOnly computes the coupon's own discount terms for display,
// ignoring any pricing tier. Returns nil when the coupon is absent or
// no longer usable.
func CouponOnly(c *coupon.Coupon, now time.Time) *Discount {
	if !c.IsUsable(now) {
		return nil
	}

	d := &Discount{}
	if c.PercentOff != nil {
		d.Percent = *c.PercentOff
		d.Display = formatPercent(d.Percent)
	}
	if c.AmountOff != nil {
		d.Amount = c.AmountOffMajor()
		currency := DefaultCurrency
		if c.Currency != "" {
			currency = strings.ToUpper(c.Currency)
		}
		d.Display = formatAmount(d.Amount, currency)
	}
	return d
}

func formatPercent(p decimal.Decimal) string {
	return fmt.Sprintf("-%s%%", p.Round(2).String())
}

func formatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("-%s %s", amount.Round(2).String(), currency)
}
