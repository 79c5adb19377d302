package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/zurichjs/rewards/internal/api/dto"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/testutil"
	"github.com/zurichjs/rewards/internal/types"
)

type CouponServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CouponService
}

func TestCouponService(t *testing.T) {
	suite.Run(t, new(CouponServiceSuite))
}

func (s *CouponServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCouponService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Cache:         s.GetCache(),
		TokenCodec:    s.GetTokenCodec(),
		Notifier:      s.GetNotifier(),
		UserRepo:      s.GetUserStore(),
		CouponGateway: s.GetCouponGateway(),
	})
}

func (s *CouponServiceSuite) adminCtx() context.Context {
	return testutil.SetupAdminContext("user_admin")
}

func (s *CouponServiceSuite) seedUser(id string) {
	s.GetUserStore().CreateUser(&user.User{
		ID:       id,
		Email:    id + "@example.com",
		Metadata: user.NewMetadata(),
	})
}

func (s *CouponServiceSuite) seedCoupon(code string, percent int64) {
	p := decimal.NewFromInt(percent)
	s.GetCouponGateway().AddCoupon(&coupon.Coupon{
		ID: code, Code: code, PercentOff: &p, Valid: true,
	})
}

func (s *CouponServiceSuite) TestCreateCoupon() {
	percent := decimal.NewFromInt(25)
	resp, err := s.service.CreateCoupon(s.adminCtx(), dto.CreateCouponRequest{
		Code:       "SPEAKER25",
		Name:       "Speaker discount",
		PercentOff: &percent,
	})
	s.NoError(err)
	s.Equal("SPEAKER25", resp.Code)
	s.Equal(types.CouponDurationOnce, resp.Duration)
	s.True(resp.Valid)

	events := s.GetNotifier().Events()
	s.Require().Len(events, 1)
	s.Equal("coupon.created", events[0].Event)
}

func (s *CouponServiceSuite) TestCreateCouponGeneratesCode() {
	percent := decimal.NewFromInt(10)
	resp, err := s.service.CreateCoupon(s.adminCtx(), dto.CreateCouponRequest{
		PercentOff: &percent,
	})
	s.NoError(err)
	s.True(strings.HasPrefix(resp.Code, types.SHORT_ID_PREFIX_COUPON))
	s.Greater(len(resp.Code), len(types.SHORT_ID_PREFIX_COUPON))
}

func (s *CouponServiceSuite) TestCreateCouponValidation() {
	percent := decimal.NewFromInt(10)
	amount := decimal.NewFromInt(500)

	// neither component
	_, err := s.service.CreateCoupon(s.adminCtx(), dto.CreateCouponRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// both components
	_, err = s.service.CreateCoupon(s.adminCtx(), dto.CreateCouponRequest{
		PercentOff: &percent,
		AmountOff:  &amount,
		Currency:   "chf",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// amount without currency
	_, err = s.service.CreateCoupon(s.adminCtx(), dto.CreateCouponRequest{
		AmountOff: &amount,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// repeating without months
	_, err = s.service.CreateCoupon(s.adminCtx(), dto.CreateCouponRequest{
		PercentOff: &percent,
		Duration:   types.CouponDurationRepeating,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CouponServiceSuite) TestListCoupons() {
	s.seedCoupon("SPEAKER25", 25)
	s.seedCoupon("COMMUNITY10", 10)
	expired := decimal.NewFromInt(50)
	s.GetCouponGateway().AddCoupon(&coupon.Coupon{
		ID: "OLD50", Code: "OLD50", PercentOff: &expired, Valid: false, TimesRedeemed: 7,
	})

	resp, err := s.service.ListCoupons(s.adminCtx())
	s.NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(3, resp.Stats.Total)
	s.Equal(2, resp.Stats.Valid)
	s.Equal(int64(7), resp.Stats.TotalRedemptions)
}

func (s *CouponServiceSuite) TestDeleteCoupon() {
	s.seedCoupon("SPEAKER25", 25)

	s.NoError(s.service.DeleteCoupon(s.adminCtx(), "SPEAKER25"))

	err := s.service.DeleteCoupon(s.adminCtx(), "SPEAKER25")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponServiceSuite) TestAssignCoupon() {
	s.seedUser("user_alice")
	s.seedCoupon("SPEAKER25", 25)

	resp, err := s.service.AssignCoupon(s.adminCtx(), "user_alice", dto.AssignCouponRequest{Code: "SPEAKER25"})
	s.NoError(err)
	s.Require().Len(resp.Coupons, 1)
	s.Equal("SPEAKER25", resp.Coupons[0].Code)
	s.True(resp.Coupons[0].IsActive)
	s.Equal("user_admin", resp.Coupons[0].AssignedBy)

	// duplicate assignment
	_, err = s.service.AssignCoupon(s.adminCtx(), "user_alice", dto.AssignCouponRequest{Code: "SPEAKER25"})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))

	// unknown code
	_, err = s.service.AssignCoupon(s.adminCtx(), "user_alice", dto.AssignCouponRequest{Code: "NOPE"})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponServiceSuite) TestToggleCoupon() {
	s.seedUser("user_alice")
	s.seedCoupon("SPEAKER25", 25)

	_, err := s.service.AssignCoupon(s.adminCtx(), "user_alice", dto.AssignCouponRequest{Code: "SPEAKER25"})
	s.NoError(err)

	resp, err := s.service.ToggleCoupon(s.adminCtx(), "user_alice", "SPEAKER25")
	s.NoError(err)
	s.False(resp.Coupons[0].IsActive)

	resp, err = s.service.ToggleCoupon(s.adminCtx(), "user_alice", "SPEAKER25")
	s.NoError(err)
	s.True(resp.Coupons[0].IsActive)

	_, err = s.service.ToggleCoupon(s.adminCtx(), "user_alice", "NOPE")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponServiceSuite) TestRemoveCoupon() {
	s.seedUser("user_alice")
	s.seedCoupon("SPEAKER25", 25)

	_, err := s.service.AssignCoupon(s.adminCtx(), "user_alice", dto.AssignCouponRequest{Code: "SPEAKER25"})
	s.NoError(err)

	resp, err := s.service.RemoveCoupon(s.adminCtx(), "user_alice", "SPEAKER25")
	s.NoError(err)
	s.Empty(resp.Coupons)

	_, err = s.service.RemoveCoupon(s.adminCtx(), "user_alice", "SPEAKER25")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CouponServiceSuite) TestManageCredits() {
	s.seedUser("user_alice")

	resp, err := s.service.ManageCredits(s.adminCtx(), "user_alice", dto.ManageCreditsRequest{
		Action: types.CreditActionSet, Amount: 50,
	})
	s.NoError(err)
	s.Equal(int64(50), resp.Credits)

	resp, err = s.service.ManageCredits(s.adminCtx(), "user_alice", dto.ManageCreditsRequest{
		Action: types.CreditActionAdd, Amount: 10,
	})
	s.NoError(err)
	s.Equal(int64(60), resp.Credits)

	// removal clamps at zero
	resp, err = s.service.ManageCredits(s.adminCtx(), "user_alice", dto.ManageCreditsRequest{
		Action: types.CreditActionRemove, Amount: 100,
	})
	s.NoError(err)
	s.Zero(resp.Credits)

	_, err = s.service.ManageCredits(s.adminCtx(), "user_alice", dto.ManageCreditsRequest{
		Action: "multiply", Amount: 2,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
