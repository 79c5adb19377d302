package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zurichjs/rewards/internal/api/dto"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/logger"
	"github.com/zurichjs/rewards/internal/service"
)

type PromotionHandler struct {
	promotionService service.PromotionService
	logger           *logger.Logger
}

func NewPromotionHandler(promotionService service.PromotionService, logger *logger.Logger) *PromotionHandler {
	return &PromotionHandler{
		promotionService: promotionService,
		logger:           logger,
	}
}

// @Summary Find related workshops
// @Description Filters workshop candidates to those worth cross-promoting on an event page
// @Tags Promotions
// @Accept json
// @Produce json
// @Param request body dto.RelatedWorkshopsRequest true "Event and candidates"
// @Success 200 {object} dto.RelatedWorkshopsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /promotions/related-workshops [post]
func (h *PromotionHandler) RelatedWorkshops(c *gin.Context) {
	var req dto.RelatedWorkshopsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.promotionService.RelatedWorkshops(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
