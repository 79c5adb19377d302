package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/discount"
	"github.com/zurichjs/rewards/internal/domain/pricing"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// PricingPeriodResponse is the currently active pricing tier
type PricingPeriodResponse struct {
	Title           string          `json:"title"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

func NewPricingPeriodResponse(p *pricing.PricingPeriod) *PricingPeriodResponse {
	return &PricingPeriodResponse{
		Title:           p.Title,
		DiscountPercent: p.DiscountPercent,
		ExpiresAt:       p.ExpiresAt,
	}
}

// ValidateCouponResponse is the public view of a validated coupon
type ValidateCouponResponse struct {
	Code       string           `json:"code"`
	Name       string           `json:"name,omitempty"`
	PercentOff *decimal.Decimal `json:"percent_off,omitempty"`
	AmountOff  *decimal.Decimal `json:"amount_off,omitempty"` // minor currency units
	Currency   string           `json:"currency,omitempty"`
	Valid      bool             `json:"valid"`
	Display    string           `json:"display,omitempty"`
}

func NewValidateCouponResponse(c *coupon.Coupon, d *discount.Discount) *ValidateCouponResponse {
	resp := &ValidateCouponResponse{
		Code:       c.Code,
		Name:       c.Name,
		PercentOff: c.PercentOff,
		AmountOff:  c.AmountOff,
		Currency:   c.Currency,
		Valid:      c.Valid,
	}
	if d != nil {
		resp.Display = d.Display
	}
	return resp
}

// QuoteRequest asks for the combined discount on a base price. The
// coupon is only applied when ApplyCoupon is set and the code resolves
// to a usable coupon.
type QuoteRequest struct {
	BasePrice   decimal.Decimal `json:"base_price"`
	CouponCode  string          `json:"coupon_code,omitempty"`
	ApplyCoupon bool            `json:"apply_coupon"`
	At          *time.Time      `json:"at,omitempty"`
}

func (r *QuoteRequest) Validate() error {
	if r.BasePrice.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("base_price must be greater than zero").
			WithHint("Please provide a positive base price").
			Mark(ierr.ErrValidation)
	}
	if r.ApplyCoupon && r.CouponCode == "" {
		return ierr.NewError("coupon_code is required when apply_coupon is set").
			WithHint("Please provide a coupon code").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// QuoteResponse is the combined discount and resulting price
type QuoteResponse struct {
	BasePrice  decimal.Decimal        `json:"base_price"`
	Period     *PricingPeriodResponse `json:"period"`
	Percent    decimal.Decimal        `json:"percent"`
	Amount     decimal.Decimal        `json:"amount"`
	Display    string                 `json:"display"`
	FinalPrice decimal.Decimal        `json:"final_price"`
}
