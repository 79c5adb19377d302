package service

import (
	"github.com/zurichjs/rewards/internal/cache"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/user"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/security"
	"github.com/zurichjs/rewards/internal/webhook"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	TokenCodec security.TokenCodec
	Notifier   webhook.Notifier

	// External collaborators
	UserRepo      user.Repository
	CouponGateway coupon.ProviderGateway
}

// NewServiceParams assembles the shared service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	tokenCodec security.TokenCodec,
	notifier webhook.Notifier,
	userRepo user.Repository,
	couponGateway coupon.ProviderGateway,
) ServiceParams {
	return ServiceParams{
		Logger:        logger,
		Config:        config,
		Cache:         cache,
		TokenCodec:    tokenCodec,
		Notifier:      notifier,
		UserRepo:      userRepo,
		CouponGateway: couponGateway,
	}
}
