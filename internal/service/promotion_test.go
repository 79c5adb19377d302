package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/zurichjs/rewards/internal/api/dto"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/testutil"
)

type PromotionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PromotionService
}

func TestPromotionService(t *testing.T) {
	suite.Run(t, new(PromotionServiceSuite))
}

func (s *PromotionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPromotionService(ServiceParams{
		Logger: s.GetLogger(),
		Config: s.GetConfig(),
		Cache:  s.GetCache(),
	})
}

func (s *PromotionServiceSuite) TestRelatedWorkshops() {
	event := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	resp, err := s.service.RelatedWorkshops(s.GetContext(), dto.RelatedWorkshopsRequest{
		EventStartsAt: event,
		Workshops: []dto.WorkshopInput{
			{ID: "ws_same_day", Title: "TypeScript Deep Dive", StartsAt: event.Add(-6 * time.Hour)},
			{ID: "ws_day_before", Title: "Testing Patterns", StartsAt: event.Add(-30 * time.Hour)},
			{ID: "ws_too_early", Title: "Intro to Node", StartsAt: event.Add(-72 * time.Hour)},
			{ID: "ws_after", Title: "React Workshop", StartsAt: event.Add(24 * time.Hour)},
		},
	})
	s.NoError(err)
	s.Require().Len(resp.Workshops, 2)
	s.Equal("ws_same_day", resp.Workshops[0].ID)
	s.Equal("ws_day_before", resp.Workshops[1].ID)
}

func (s *PromotionServiceSuite) TestRelatedWorkshopsValidation() {
	_, err := s.service.RelatedWorkshops(s.GetContext(), dto.RelatedWorkshopsRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PromotionServiceSuite) TestRelatedWorkshopsEmptyCandidates() {
	resp, err := s.service.RelatedWorkshops(s.GetContext(), dto.RelatedWorkshopsRequest{
		EventStartsAt: time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.Empty(resp.Workshops)
}
