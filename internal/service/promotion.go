package service

import (
	"context"

	"github.com/zurichjs/rewards/internal/api/dto"
	"github.com/zurichjs/rewards/internal/domain/promotion"
)

// PromotionService decides which workshops to cross-promote on an
// event's page.
type PromotionService interface {
	RelatedWorkshops(ctx context.Context, req dto.RelatedWorkshopsRequest) (*dto.RelatedWorkshopsResponse, error)
}

type promotionService struct {
	ServiceParams
}

// NewPromotionService creates a new promotion service
func NewPromotionService(params ServiceParams) PromotionService {
	return &promotionService{ServiceParams: params}
}

func (s *promotionService) RelatedWorkshops(ctx context.Context, req dto.RelatedWorkshopsRequest) (*dto.RelatedWorkshopsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	related := promotion.RelatedWorkshops(req.EventStartsAt, req.ToWorkshops())
	return dto.NewRelatedWorkshopsResponse(related), nil
}
