package stripe

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/zurichjs/rewards/internal/config"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/logger"
)

// Client wraps the configured Stripe API client
type Client struct {
	sc     *stripe.Client
	logger *logger.Logger
}

// NewClient creates a Stripe client from the configured secret key
func NewClient(cfg *config.Configuration, logger *logger.Logger) (*Client, error) {
	if cfg.Stripe.SecretKey == "" {
		return nil, ierr.NewError("stripe secret key not configured").
			Mark(ierr.ErrSystem)
	}

	return &Client{
		sc:     stripe.NewClient(cfg.Stripe.SecretKey, nil),
		logger: logger,
	}, nil
}
