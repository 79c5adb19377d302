package stripe

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/types"
)

// CouponGateway implements coupon.ProviderGateway against Stripe.
// Stripe coupon IDs double as the shareable codes, matching how the
// checkout flow validates them.
type CouponGateway struct {
	client *Client
}

// NewCouponGateway creates a Stripe-backed coupon gateway
func NewCouponGateway(client *Client) coupon.ProviderGateway {
	return &CouponGateway{client: client}
}

// Fetch retrieves a coupon by code
func (g *CouponGateway) Fetch(ctx context.Context, code string) (*coupon.Coupon, error) {
	sc, err := g.client.sc.V1Coupons.Retrieve(ctx, code, nil)
	if err != nil {
		g.client.logger.Debugw("coupon lookup failed", "code", code, "error", err)
		return nil, ierr.WithError(err).
			WithHint("Invalid coupon code").
			Mark(ierr.ErrNotFound)
	}

	return fromStripe(sc), nil
}

// Create creates a provider-level coupon
func (g *CouponGateway) Create(ctx context.Context, input coupon.CreateInput) (*coupon.Coupon, error) {
	params := &stripe.CouponCreateParams{
		Duration: stripe.String(string(input.Duration)),
	}
	if input.Code != "" {
		params.ID = stripe.String(input.Code)
	}
	if input.Name != "" {
		params.Name = stripe.String(input.Name)
	}
	if input.PercentOff != nil {
		params.PercentOff = stripe.Float64(input.PercentOff.InexactFloat64())
	}
	if input.AmountOff != nil {
		params.AmountOff = stripe.Int64(input.AmountOff.IntPart())
		params.Currency = stripe.String(input.Currency)
	}
	if input.DurationInMonths != nil {
		params.DurationInMonths = stripe.Int64(*input.DurationInMonths)
	}
	if input.MaxRedemptions != nil {
		params.MaxRedemptions = stripe.Int64(*input.MaxRedemptions)
	}
	if input.RedeemBy != nil {
		params.RedeemBy = stripe.Int64(input.RedeemBy.Unix())
	}

	sc, err := g.client.sc.V1Coupons.Create(ctx, params)
	if err != nil {
		g.client.logger.Errorw("failed to create coupon", "code", input.Code, "error", err)
		return nil, ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(ierr.ErrHTTPClient)
	}

	return fromStripe(sc), nil
}

// Delete removes a provider-level coupon by ID
func (g *CouponGateway) Delete(ctx context.Context, id string) error {
	if _, err := g.client.sc.V1Coupons.Delete(ctx, id, nil); err != nil {
		g.client.logger.Errorw("failed to delete coupon", "coupon_id", id, "error", err)
		return ierr.WithError(err).
			WithHint("Failed to delete coupon").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// List returns all provider-level coupons
func (g *CouponGateway) List(ctx context.Context) ([]*coupon.Coupon, error) {
	var coupons []*coupon.Coupon

	iter := g.client.sc.V1Coupons.List(ctx, &stripe.CouponListParams{})
	for sc, err := range iter {
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to list coupons").
				Mark(ierr.ErrHTTPClient)
		}
		coupons = append(coupons, fromStripe(sc))
	}

	return coupons, nil
}

func fromStripe(sc *stripe.Coupon) *coupon.Coupon {
	if sc == nil {
		return nil
	}

	c := &coupon.Coupon{
		ID:            sc.ID,
		Code:          sc.ID,
		Name:          sc.Name,
		Currency:      string(sc.Currency),
		Duration:      types.CouponDuration(sc.Duration),
		TimesRedeemed: sc.TimesRedeemed,
		Valid:         sc.Valid,
	}
	if sc.PercentOff != 0 {
		p := decimal.NewFromFloat(sc.PercentOff)
		c.PercentOff = &p
	}
	if sc.AmountOff != 0 {
		a := decimal.NewFromInt(sc.AmountOff)
		c.AmountOff = &a
	}
	if sc.MaxRedemptions != 0 {
		m := sc.MaxRedemptions
		c.MaxRedemptions = &m
	}
	if sc.RedeemBy != 0 {
		t := time.Unix(sc.RedeemBy, 0).UTC()
		c.RedeemBy = &t
	}
	return c
}
