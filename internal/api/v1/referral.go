package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zurichjs/rewards/internal/api/dto"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/service"
)

type ReferralHandler struct {
	referralService service.ReferralService
	logger          *logger.Logger
}

func NewReferralHandler(referralService service.ReferralService, logger *logger.Logger) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
		logger:          logger,
	}
}

// @Summary Get my referral token
// @Description Issues a signed referral token and share link for the caller
// @Tags Referrals
// @Produce json
// @Success 200 {object} dto.ReferralTokenResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /referrals/token [get]
// @Security BearerAuth
func (h *ReferralHandler) GetToken(c *gin.Context) {
	response, err := h.referralService.CreateToken(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Process a referral signup
// @Description Finalizes a referral for the authenticated referee
// @Tags Referrals
// @Accept json
// @Produce json
// @Param signup body dto.ProcessSignupRequest true "Signup request"
// @Success 200 {object} dto.ProcessSignupResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /referrals/signup [post]
// @Security BearerAuth
func (h *ReferralHandler) ProcessSignup(c *gin.Context) {
	var req dto.ProcessSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.referralService.ProcessSignup(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get my referrals
// @Description Returns the caller's credits, referrer, and referral records
// @Tags Referrals
// @Produce json
// @Success 200 {object} dto.MyReferralsResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /referrals/me [get]
// @Security BearerAuth
func (h *ReferralHandler) GetMyReferrals(c *gin.Context) {
	response, err := h.referralService.GetMyReferrals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Adjust my credits
// @Description Applies a credit delta to the caller's own balance
// @Tags Referrals
// @Accept json
// @Produce json
// @Param credits body dto.AddCreditsRequest true "Credit delta"
// @Success 200 {object} dto.CreditsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /referrals/credits [post]
// @Security BearerAuth
func (h *ReferralHandler) AddCredits(c *gin.Context) {
	var req dto.AddCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.referralService.AddCredits(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
