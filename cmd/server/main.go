package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/zurichjs/rewards/internal/api"
	v1 "github.com/zurichjs/rewards/internal/api/v1"
	"github.com/zurichjs/rewards/internal/cache"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/httpclient"
	"github.com/zurichjs/rewards/internal/integration/clerk"
	"github.com/zurichjs/rewards/internal/integration/stripe"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/security"
	"github.com/zurichjs/rewards/internal/service"
	"github.com/zurichjs/rewards/internal/validator"
	"github.com/zurichjs/rewards/internal/webhook"
	"go.uber.org/fx"
)

// @title ZurichJS Rewards API
// @version 1.0
// @description Pricing, coupon, and referral-credit service for the ZurichJS community site
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// All timestamps are UTC; pricing tier boundaries depend on it
	time.Local = time.UTC
}

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,
			cache.NewInMemoryCache,
			httpclient.NewDefaultClient,
			security.NewTokenCodec,
			webhook.NewNotifier,

			// External collaborators
			clerk.NewClient,
			stripe.NewClient,
			stripe.NewCouponGateway,
		),
		fx.Provide(
			service.NewServiceParams,
			service.NewPricingService,
			service.NewReferralService,
			service.NewCouponService,
			service.NewPromotionService,
		),
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	pricingService service.PricingService,
	referralService service.ReferralService,
	couponService service.CouponService,
	promotionService service.PromotionService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(logger),
		Pricing:   v1.NewPricingHandler(pricingService, logger),
		Referral:  v1.NewReferralHandler(referralService, logger),
		Coupon:    v1.NewCouponHandler(couponService, logger),
		Promotion: v1.NewPromotionHandler(promotionService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
