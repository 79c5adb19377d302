package testutil

import (
	"context"
	"sync"

	"github.com/zurichjs/rewards/internal/domain/coupon"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/types"
)

// InMemoryCouponGateway implements coupon.ProviderGateway for testing
type InMemoryCouponGateway struct {
	mu      sync.RWMutex
	coupons map[string]*coupon.Coupon

	// FetchCalls counts provider lookups, letting cache tests assert
	// that repeated validations do not hit the provider again.
	FetchCalls int
}

// NewInMemoryCouponGateway creates a new in-memory coupon gateway
func NewInMemoryCouponGateway() *InMemoryCouponGateway {
	return &InMemoryCouponGateway{
		coupons: make(map[string]*coupon.Coupon),
	}
}

// AddCoupon seeds a coupon snapshot keyed by its code
func (g *InMemoryCouponGateway) AddCoupon(c *coupon.Coupon) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.coupons[c.Code] = c
}

func (g *InMemoryCouponGateway) Fetch(ctx context.Context, code string) (*coupon.Coupon, error) {
	g.mu.Lock()
	g.FetchCalls++
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()

	c, ok := g.coupons[code]
	if !ok {
		return nil, ierr.NewError("coupon not found").
			WithHint("Invalid coupon code").
			Mark(ierr.ErrNotFound)
	}

	clone := *c
	return &clone, nil
}

func (g *InMemoryCouponGateway) Create(ctx context.Context, input coupon.CreateInput) (*coupon.Coupon, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.coupons[input.Code]; exists {
		return nil, ierr.NewError("coupon already exists").
			WithHintf("A coupon with code %s already exists", input.Code).
			Mark(ierr.ErrAlreadyExists)
	}

	c := &coupon.Coupon{
		ID:             input.Code,
		Code:           input.Code,
		Name:           input.Name,
		PercentOff:     input.PercentOff,
		AmountOff:      input.AmountOff,
		Currency:       input.Currency,
		Duration:       input.Duration,
		MaxRedemptions: input.MaxRedemptions,
		RedeemBy:       input.RedeemBy,
		Valid:          true,
	}
	if c.Duration == "" {
		c.Duration = types.CouponDurationOnce
	}
	g.coupons[c.Code] = c

	clone := *c
	return &clone, nil
}

func (g *InMemoryCouponGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.coupons[id]; !ok {
		return ierr.NewError("coupon not found").
			WithHintf("Coupon %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	delete(g.coupons, id)
	return nil
}

func (g *InMemoryCouponGateway) List(ctx context.Context) ([]*coupon.Coupon, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*coupon.Coupon, 0, len(g.coupons))
	for _, c := range g.coupons {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

// Clear removes all coupons and resets call counters
func (g *InMemoryCouponGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.coupons = make(map[string]*coupon.Coupon)
	g.FetchCalls = 0
}
