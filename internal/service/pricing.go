package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zurichjs/rewards/internal/api/dto"
	"github.com/zurichjs/rewards/internal/cache"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/discount"
	"github.com/zurichjs/rewards/internal/domain/pricing"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// couponCacheTTL bounds how long a validated coupon snapshot is reused.
// Short on purpose: the provider owns redemption counts and expiry.
const couponCacheTTL = 2 * time.Minute

// PricingService resolves the active pricing tier, validates coupons
// against the payment provider, and quotes combined discounts.
type PricingService interface {
	GetCurrentPricing(ctx context.Context, at time.Time) (*dto.PricingPeriodResponse, error)
	ValidateCoupon(ctx context.Context, code string) (*dto.ValidateCouponResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error)
}

type pricingService struct {
	ServiceParams
}

// NewPricingService creates a new pricing service
func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

// GetCurrentPricing returns the active pricing tier at the given instant
func (s *pricingService) GetCurrentPricing(ctx context.Context, at time.Time) (*dto.PricingPeriodResponse, error) {
	periods, err := s.periods()
	if err != nil {
		return nil, err
	}

	active, err := pricing.ResolveActivePeriod(periods, at)
	if err != nil {
		return nil, err
	}

	return dto.NewPricingPeriodResponse(active), nil
}

// ValidateCoupon fetches a coupon snapshot from the provider, serving
// repeated lookups for the same code from cache.
func (s *pricingService) ValidateCoupon(ctx context.Context, code string) (*dto.ValidateCouponResponse, error) {
	if code == "" {
		return nil, ierr.NewError("coupon code is required").
			WithHint("Please provide a coupon code").
			Mark(ierr.ErrValidation)
	}

	c, err := s.fetchCoupon(ctx, code)
	if err != nil {
		return nil, err
	}

	return dto.NewValidateCouponResponse(c, discount.CouponOnly(c, time.Now().UTC())), nil
}

// Quote combines the active tier with an optional coupon against a base price
func (s *pricingService) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.At != nil {
		now = req.At.UTC()
	}

	periods, err := s.periods()
	if err != nil {
		return nil, err
	}
	active, err := pricing.ResolveActivePeriod(periods, now)
	if err != nil {
		return nil, err
	}

	var c *coupon.Coupon
	if req.ApplyCoupon {
		c, err = s.fetchCoupon(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	d, err := discount.Combine(req.BasePrice, *active, c, req.ApplyCoupon, now)
	if err != nil {
		return nil, err
	}

	return &dto.QuoteResponse{
		BasePrice:  req.BasePrice,
		Period:     dto.NewPricingPeriodResponse(active),
		Percent:    d.Percent,
		Amount:     d.Amount,
		Display:    d.Display,
		FinalPrice: req.BasePrice.Sub(d.Amount),
	}, nil
}

func (s *pricingService) fetchCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	key := cache.GenerateKey(cache.PrefixCoupon, code)
	if cached, found := s.Cache.Get(ctx, key); found {
		if c, ok := cached.(*coupon.Coupon); ok {
			return c, nil
		}
	}

	c, err := s.CouponGateway.Fetch(ctx, code)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, c, couponCacheTTL)
	return c, nil
}

// periods materializes the configured pricing tiers. Expiration strings
// are validated at config load, so parse failures indicate a programming
// error rather than bad input.
func (s *pricingService) periods() ([]pricing.PricingPeriod, error) {
	configured := s.Config.Pricing.Periods
	periods := make([]pricing.PricingPeriod, 0, len(configured))
	for _, p := range configured {
		expiresAt, err := time.Parse(time.RFC3339, p.ExpiresAt)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Pricing configuration is invalid").
				Mark(ierr.ErrSystem)
		}
		periods = append(periods, pricing.PricingPeriod{
			Title:           p.Title,
			DiscountPercent: decimal.NewFromFloat(p.DiscountPercent),
			ExpiresAt:       expiresAt,
		})
	}
	return periods, nil
}
