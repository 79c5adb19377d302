package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zurichjs/rewards/internal/api/dto"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/service"
)

type PricingHandler struct {
	pricingService service.PricingService
	logger         *logger.Logger
}

func NewPricingHandler(pricingService service.PricingService, logger *logger.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// @Summary Get current pricing
// @Description Returns the active pricing tier, optionally at a given instant
// @Tags Pricing
// @Produce json
// @Param at query string false "RFC3339 instant to resolve at"
// @Success 200 {object} dto.PricingPeriodResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/current [get]
func (h *PricingHandler) GetCurrentPricing(c *gin.Context) {
	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("at must be an RFC3339 timestamp").
				Mark(ierr.ErrValidation))
			return
		}
		at = parsed
	}

	response, err := h.pricingService.GetCurrentPricing(c.Request.Context(), at)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Validate a coupon code
// @Description Checks a coupon code against the payment provider
// @Tags Pricing
// @Produce json
// @Param code query string true "Coupon code"
// @Success 200 {object} dto.ValidateCouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 429 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/validate-coupon [get]
func (h *PricingHandler) ValidateCoupon(c *gin.Context) {
	response, err := h.pricingService.ValidateCoupon(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Quote a combined discount
// @Description Combines the active pricing tier with an optional coupon against a base price
// @Tags Pricing
// @Accept json
// @Produce json
// @Param quote body dto.QuoteRequest true "Quote request"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.pricingService.Quote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
