package types

import (
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// CouponDuration mirrors the payment provider's coupon duration values
type CouponDuration string

const (
	CouponDurationOnce      CouponDuration = "once"
	CouponDurationRepeating CouponDuration = "repeating"
	CouponDurationForever   CouponDuration = "forever"
)

func (d CouponDuration) Validate() error {
	switch d {
	case CouponDurationOnce, CouponDurationRepeating, CouponDurationForever:
		return nil
	default:
		return ierr.NewError("invalid coupon duration").
			WithHintf("Coupon duration must be one of once, repeating, forever, got %s", d).
			Mark(ierr.ErrValidation)
	}
}
