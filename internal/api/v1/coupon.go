package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zurichjs/rewards/internal/api/dto"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/service"
)

type CouponHandler struct {
	couponService service.CouponService
	logger        *logger.Logger
}

func NewCouponHandler(couponService service.CouponService, logger *logger.Logger) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		logger:        logger,
	}
}

// @Summary Create a new coupon
// @Description Creates a provider-level coupon; a missing code is generated
// @Tags Coupons
// @Accept json
// @Produce json
// @Param coupon body dto.CreateCouponRequest true "Coupon request"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/coupons [post]
// @Security BearerAuth
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// @Summary List coupons
// @Description Lists all provider-level coupons with aggregate stats
// @Tags Coupons
// @Produce json
// @Success 200 {object} dto.ListCouponsResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/coupons [get]
// @Security BearerAuth
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	response, err := h.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a coupon
// @Description Deletes a provider-level coupon
// @Tags Coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 204
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/coupons/{id} [delete]
// @Security BearerAuth
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("coupon ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Assign a coupon to a user
// @Description Adds a coupon assignment to a user's metadata
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param assignment body dto.AssignCouponRequest true "Assignment request"
// @Success 200 {object} dto.UserCouponsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/coupons [post]
// @Security BearerAuth
func (h *CouponHandler) AssignCoupon(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.Error(ierr.NewError("user ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.AssignCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.AssignCoupon(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Toggle a user's coupon
// @Description Flips the active flag on a user's coupon assignment
// @Tags Coupons
// @Produce json
// @Param id path string true "User ID"
// @Param code path string true "Coupon code"
// @Success 200 {object} dto.UserCouponsResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/coupons/{code}/toggle [post]
// @Security BearerAuth
func (h *CouponHandler) ToggleCoupon(c *gin.Context) {
	response, err := h.couponService.ToggleCoupon(c.Request.Context(), c.Param("id"), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Remove a user's coupon
// @Description Removes a coupon assignment from a user's metadata
// @Tags Coupons
// @Produce json
// @Param id path string true "User ID"
// @Param code path string true "Coupon code"
// @Success 200 {object} dto.UserCouponsResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/coupons/{code} [delete]
// @Security BearerAuth
func (h *CouponHandler) RemoveCoupon(c *gin.Context) {
	response, err := h.couponService.RemoveCoupon(c.Request.Context(), c.Param("id"), c.Param("code"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Manage a user's credits
// @Description Sets, adds, or removes credits on a user's balance
// @Tags Coupons
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param credits body dto.ManageCreditsRequest true "Credit operation"
// @Success 200 {object} dto.CreditsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/credits [post]
// @Security BearerAuth
func (h *CouponHandler) ManageCredits(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.Error(ierr.NewError("user ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.ManageCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.couponService.ManageCredits(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
