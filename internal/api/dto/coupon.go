package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/types"
	"github.com/zurichjs/rewards/internal/validator"
)

// CreateCouponRequest creates a provider-level coupon. Exactly one of
// percent_off and amount_off must be set; a missing code is generated.
type CreateCouponRequest struct {
	Code             string           `json:"code,omitempty"`
	Name             string           `json:"name,omitempty"`
	PercentOff       *decimal.Decimal `json:"percent_off,omitempty"`
	AmountOff        *decimal.Decimal `json:"amount_off,omitempty"` // minor currency units
	Currency         string           `json:"currency,omitempty"`
	Duration         types.CouponDuration `json:"duration"`
	DurationInMonths *int64           `json:"duration_in_months,omitempty"`
	MaxRedemptions   *int64           `json:"max_redemptions,omitempty"`
	RedeemBy         *time.Time       `json:"redeem_by,omitempty"`
}

func (r *CreateCouponRequest) Validate() error {
	if (r.PercentOff == nil) == (r.AmountOff == nil) {
		return ierr.NewError("exactly one of percent_off and amount_off must be set").
			WithHint("Please provide either a percentage or an absolute amount, not both").
			Mark(ierr.ErrValidation)
	}

	if r.PercentOff != nil {
		if r.PercentOff.LessThanOrEqual(decimal.Zero) || r.PercentOff.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("percent_off must be between 0 and 100").
				WithHint("Please provide a valid percentage between 0 and 100").
				Mark(ierr.ErrValidation)
		}
	}

	if r.AmountOff != nil {
		if r.AmountOff.LessThanOrEqual(decimal.Zero) {
			return ierr.NewError("amount_off must be greater than zero").
				WithHint("Please provide a valid discount amount").
				Mark(ierr.ErrValidation)
		}
		if r.Currency == "" {
			return ierr.NewError("currency is required with amount_off").
				WithHint("Please provide a currency code").
				Mark(ierr.ErrValidation)
		}
	}

	if r.Duration == "" {
		r.Duration = types.CouponDurationOnce
	}
	if err := r.Duration.Validate(); err != nil {
		return err
	}

	if r.Duration == types.CouponDurationRepeating && r.DurationInMonths == nil {
		return ierr.NewError("duration_in_months is required for repeating coupons").
			WithHint("Please provide the number of months the coupon repeats for").
			Mark(ierr.ErrValidation)
	}

	if r.MaxRedemptions != nil && *r.MaxRedemptions <= 0 {
		return ierr.NewError("max_redemptions must be greater than zero").
			WithHint("Please provide a valid maximum redemption count").
			Mark(ierr.ErrValidation)
	}

	return nil
}

func (r *CreateCouponRequest) ToCreateInput() coupon.CreateInput {
	return coupon.CreateInput{
		Code:             r.Code,
		Name:             r.Name,
		PercentOff:       r.PercentOff,
		AmountOff:        r.AmountOff,
		Currency:         r.Currency,
		Duration:         r.Duration,
		DurationInMonths: r.DurationInMonths,
		MaxRedemptions:   r.MaxRedemptions,
		RedeemBy:         r.RedeemBy,
	}
}

// CouponResponse is the admin view of a provider-level coupon
type CouponResponse struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	Name           string           `json:"name,omitempty"`
	PercentOff     *decimal.Decimal `json:"percent_off,omitempty"`
	AmountOff      *decimal.Decimal `json:"amount_off,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	Duration       types.CouponDuration `json:"duration"`
	MaxRedemptions *int64           `json:"max_redemptions,omitempty"`
	TimesRedeemed  int64            `json:"times_redeemed"`
	RedeemBy       *time.Time       `json:"redeem_by,omitempty"`
	Valid          bool             `json:"valid"`
}

func NewCouponResponse(c *coupon.Coupon) *CouponResponse {
	return &CouponResponse{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		PercentOff:     c.PercentOff,
		AmountOff:      c.AmountOff,
		Currency:       c.Currency,
		Duration:       c.Duration,
		MaxRedemptions: c.MaxRedemptions,
		TimesRedeemed:  c.TimesRedeemed,
		RedeemBy:       c.RedeemBy,
		Valid:          c.Valid,
	}
}

// CouponStats aggregates over the provider's coupon list
type CouponStats struct {
	Total            int   `json:"total"`
	Valid            int   `json:"valid"`
	TotalRedemptions int64 `json:"total_redemptions"`
}

// ListCouponsResponse is the coupon list plus aggregate stats
type ListCouponsResponse struct {
	Items []*CouponResponse `json:"items"`
	Stats CouponStats       `json:"stats"`
}

// AssignCouponRequest assigns a coupon code to a user
type AssignCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

func (r *AssignCouponRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UserCouponsResponse lists a user's coupon assignments
type UserCouponsResponse struct {
	UserID  string        `json:"user_id"`
	Coupons []user.Coupon `json:"coupons"`
}

// ManageCreditsRequest is the admin credit-management operation
type ManageCreditsRequest struct {
	Action types.CreditAction `json:"action"`
	Amount int64              `json:"amount"`
}

func (r *ManageCreditsRequest) Validate() error {
	if err := r.Action.Validate(); err != nil {
		return err
	}
	if r.Amount < 0 {
		return ierr.NewError("amount must be non-negative").
			WithHint("Please provide a non-negative credit amount").
			Mark(ierr.ErrValidation)
	}
	return nil
}
