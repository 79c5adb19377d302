package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/zurichjs/rewards/internal/api/v1"
	"github.com/zurichjs/rewards/internal/config"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/rest/middleware"
	"github.com/zurichjs/rewards/internal/types"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Pricing   *v1.PricingHandler
	Referral  *v1.ReferralHandler
	Coupon    *v1.CouponHandler
	Promotion *v1.PromotionHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, cfg, logger)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, cfg *config.Configuration, logger *logger.Logger) {
	// Public routes: pricing and cross-promotion feed the website's
	// ticket pages before any login happens.
	pricing := router.Group("/pricing")
	{
		pricing.GET("/current", handlers.Pricing.GetCurrentPricing)
		pricing.GET("/validate-coupon",
			middleware.RateLimitMiddleware(cfg, logger),
			handlers.Pricing.ValidateCoupon)
		pricing.POST("/quote", handlers.Pricing.Quote)
	}

	promotions := router.Group("/promotions")
	{
		promotions.POST("/related-workshops", handlers.Promotion.RelatedWorkshops)
	}

	// Authenticated routes
	referrals := router.Group("/referrals")
	referrals.Use(middleware.AuthenticateMiddleware(cfg, logger))
	{
		referrals.GET("/token", handlers.Referral.GetToken)
		referrals.POST("/signup", handlers.Referral.ProcessSignup)
		referrals.GET("/me", handlers.Referral.GetMyReferrals)
		referrals.POST("/credits", handlers.Referral.AddCredits)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(
		middleware.AuthenticateMiddleware(cfg, logger),
		middleware.AdminMiddleware(cfg),
	)
	{
		admin.POST("/coupons", handlers.Coupon.CreateCoupon)
		admin.GET("/coupons", handlers.Coupon.ListCoupons)
		admin.DELETE("/coupons/:id", handlers.Coupon.DeleteCoupon)

		admin.POST("/users/:id/coupons", handlers.Coupon.AssignCoupon)
		admin.POST("/users/:id/coupons/:code/toggle", handlers.Coupon.ToggleCoupon)
		admin.DELETE("/users/:id/coupons/:code", handlers.Coupon.RemoveCoupon)
		admin.POST("/users/:id/credits", handlers.Coupon.ManageCredits)
	}
}
