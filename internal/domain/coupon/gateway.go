package coupon

import (
	"context"
)

// ProviderGateway is the boundary to the payment provider's coupon API.
// The provider owns coupon state; this service only reads and mutates it
// through this interface.
type ProviderGateway interface {
	// Fetch retrieves a coupon by its code. Unknown or deleted codes
	// surface as ErrNotFound.
	Fetch(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, input CreateInput) (*Coupon, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Coupon, error)
}
