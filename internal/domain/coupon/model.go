package coupon

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zurichjs/rewards/internal/types"
)

// Coupon is a normalized snapshot of a payment-provider coupon. It is
// authoritative only for the duration of one checkout session and is
// never persisted locally.
type Coupon struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	Name           string           `json:"name,omitempty"`
	PercentOff     *decimal.Decimal `json:"percent_off,omitempty"`
	AmountOff      *decimal.Decimal `json:"amount_off,omitempty"` // minor currency units
	Currency       string           `json:"currency,omitempty"`
	Duration       types.CouponDuration
	MaxRedemptions *int64     `json:"max_redemptions,omitempty"`
	TimesRedeemed  int64      `json:"times_redeemed"`
	RedeemBy       *time.Time `json:"redeem_by,omitempty"`
	Valid          bool       `json:"valid"`
}

// IsUsable reports whether the coupon may still be applied: the provider
// considers it valid, it has not hit its redemption cap, and its
// redeem-by deadline has not passed.
func (c *Coupon) IsUsable(now time.Time) bool {
	if c == nil || !c.Valid {
		return false
	}
	if c.MaxRedemptions != nil && c.TimesRedeemed >= *c.MaxRedemptions {
		return false
	}
	if c.RedeemBy != nil && now.After(*c.RedeemBy) {
		return false
	}
	return true
}

// AmountOffMajor converts the minor-unit amount into major currency units
func (c *Coupon) AmountOffMajor() decimal.Decimal {
	if c == nil || c.AmountOff == nil {
		return decimal.Zero
	}
	return c.AmountOff.Div(decimal.NewFromInt(100))
}

// CreateInput carries the fields for creating a provider-level coupon.
// Exactly one of PercentOff or AmountOff must be set.
type CreateInput struct {
	Code             string
	Name             string
	PercentOff       *decimal.Decimal
	AmountOff        *decimal.Decimal // minor currency units
	Currency         string
	Duration         types.CouponDuration
	DurationInMonths *int64
	MaxRedemptions   *int64
	RedeemBy         *time.Time
}
