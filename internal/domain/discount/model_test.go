package discount

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/pricing"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func tier(percent int64) pricing.PricingPeriod {
	return pricing.PricingPeriod{
		Title:           "Early Bird",
		DiscountPercent: decimal.NewFromInt(percent),
		ExpiresAt:       testNow.Add(24 * time.Hour),
	}
}

func percentCoupon(percent int64) *coupon.Coupon {
	p := decimal.NewFromInt(percent)
	return &coupon.Coupon{ID: "c1", Code: "SAVE", PercentOff: &p, Valid: true}
}

func amountCoupon(minorUnits int64, currency string) *coupon.Coupon {
	a := decimal.NewFromInt(minorUnits)
	return &coupon.Coupon{ID: "c2", Code: "FLAT", AmountOff: &a, Currency: currency, Valid: true}
}

func TestCombine(t *testing.T) {
	base := decimal.NewFromInt(100)

	t.Run("tier and percent coupon add up", func(t *testing.T) {
		d, err := Combine(base, tier(20), percentCoupon(10), true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Percent.Equal(decimal.NewFromInt(30)), "percent = %s", d.Percent)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(30)), "amount = %s", d.Amount)
		assert.Equal(t, "-30%", d.Display)
	})

	t.Run("amount-off converts minor units and renders as amount", func(t *testing.T) {
		d, err := Combine(base, tier(0), amountCoupon(1500, "chf"), true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(15)), "amount = %s", d.Amount)
		assert.Equal(t, "-15 CHF", d.Display)
	})

	t.Run("coupon ignored when not applied", func(t *testing.T) {
		d, err := Combine(base, tier(20), percentCoupon(10), false, testNow)
		require.NoError(t, err)
		assert.True(t, d.Percent.Equal(decimal.NewFromInt(20)))
		assert.Equal(t, "-20%", d.Display)
	})

	t.Run("coupon ignored when provider marks it invalid", func(t *testing.T) {
		c := percentCoupon(10)
		c.Valid = false
		d, err := Combine(base, tier(20), c, true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Percent.Equal(decimal.NewFromInt(20)))
	})

	t.Run("discount never exceeds base price", func(t *testing.T) {
		d, err := Combine(base, tier(80), amountCoupon(5000, "chf"), true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Amount.Equal(base), "amount = %s", d.Amount)
		assert.True(t, d.Percent.Equal(decimal.NewFromInt(100)), "percent = %s", d.Percent)
	})

	t.Run("percent cap at 100", func(t *testing.T) {
		d, err := Combine(base, tier(90), percentCoupon(50), true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Percent.Equal(decimal.NewFromInt(100)))
		assert.True(t, d.Amount.Equal(base))
	})

	t.Run("nil coupon is a plain tier discount", func(t *testing.T) {
		d, err := Combine(base, tier(20), nil, true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Percent.Equal(decimal.NewFromInt(20)))
	})

	t.Run("non-positive base price rejected", func(t *testing.T) {
		_, err := Combine(decimal.Zero, tier(20), nil, false, testNow)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("fractional base price keeps amount within base", func(t *testing.T) {
		base := decimal.RequireFromString("49.90")
		d, err := Combine(base, tier(25), percentCoupon(10), true, testNow)
		require.NoError(t, err)
		assert.True(t, d.Amount.LessThanOrEqual(base))
		assert.True(t, d.Percent.LessThanOrEqual(decimal.NewFromInt(100)))
	})
}

func TestCouponOnly(t *testing.T) {
	t.Run("nil coupon yields nil", func(t *testing.T) {
		assert.Nil(t, CouponOnly(nil, testNow))
	})

	t.Run("invalid coupon yields nil", func(t *testing.T) {
		c := percentCoupon(10)
		c.Valid = false
		assert.Nil(t, CouponOnly(c, testNow))
	})

	t.Run("percent coupon", func(t *testing.T) {
		d := CouponOnly(percentCoupon(10), testNow)
		require.NotNil(t, d)
		assert.Equal(t, "-10%", d.Display)
	})

	t.Run("amount coupon", func(t *testing.T) {
		d := CouponOnly(amountCoupon(2500, "eur"), testNow)
		require.NotNil(t, d)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, "-25 EUR", d.Display)
	})

	t.Run("expired redeem-by yields nil", func(t *testing.T) {
		c := percentCoupon(10)
		past := testNow.Add(-time.Hour)
		c.RedeemBy = &past
		assert.Nil(t, CouponOnly(c, testNow))
	})
}
