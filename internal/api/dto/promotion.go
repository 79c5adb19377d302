package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/zurichjs/rewards/internal/domain/promotion"
	"github.com/zurichjs/rewards/internal/validator"
)

// WorkshopInput is one cross-promotion candidate
type WorkshopInput struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
}

// RelatedWorkshopsRequest asks which workshops to cross-promote on an
// event page
type RelatedWorkshopsRequest struct {
	EventStartsAt time.Time       `json:"event_starts_at" validate:"required"`
	Workshops     []WorkshopInput `json:"workshops"`
}

func (r *RelatedWorkshopsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *RelatedWorkshopsRequest) ToWorkshops() []promotion.Workshop {
	return lo.Map(r.Workshops, func(w WorkshopInput, _ int) promotion.Workshop {
		return promotion.Workshop{ID: w.ID, Title: w.Title, StartsAt: w.StartsAt}
	})
}

// RelatedWorkshopsResponse lists the related candidates in input order
type RelatedWorkshopsResponse struct {
	Workshops []WorkshopInput `json:"workshops"`
}

func NewRelatedWorkshopsResponse(related []promotion.Workshop) *RelatedWorkshopsResponse {
	return &RelatedWorkshopsResponse{
		Workshops: lo.Map(related, func(w promotion.Workshop, _ int) WorkshopInput {
			return WorkshopInput{ID: w.ID, Title: w.Title, StartsAt: w.StartsAt}
		}),
	}
}
