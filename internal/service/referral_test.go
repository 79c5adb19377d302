package service

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/zurichjs/rewards/internal/api/dto"
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/testutil"
	"github.com/zurichjs/rewards/internal/types"
)

type ReferralServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ReferralService
}

func TestReferralService(t *testing.T) {
	suite.Run(t, new(ReferralServiceSuite))
}

func (s *ReferralServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewReferralService(s.params())
}

func (s *ReferralServiceSuite) params() ServiceParams {
	return ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		Cache:         s.GetCache(),
		TokenCodec:    s.GetTokenCodec(),
		Notifier:      s.GetNotifier(),
		UserRepo:      s.GetUserStore(),
		CouponGateway: s.GetCouponGateway(),
	}
}

func (s *ReferralServiceSuite) seedUser(id, email, name string) {
	s.GetUserStore().CreateUser(&user.User{
		ID:       id,
		Email:    email,
		Name:     name,
		Metadata: user.NewMetadata(),
	})
}

func (s *ReferralServiceSuite) TestCreateToken() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	ctx := testutil.SetupContext("user_alice")

	resp, err := s.service.CreateToken(ctx)
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Contains(resp.Link, "?ref="+resp.Token)

	decoded, err := s.GetTokenCodec().Decode(resp.Token)
	s.NoError(err)
	s.Equal("user_alice", decoded)
}

func (s *ReferralServiceSuite) TestCreateTokenWithoutUser() {
	_, err := s.service.CreateToken(s.GetContext())
	s.Error(err)
	s.True(ierr.IsUnauthorized(err))
}

func (s *ReferralServiceSuite) TestProcessSignup() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	s.seedUser("user_bob", "bob@example.com", "Bob")

	token := s.GetTokenCodec().Encode("user_alice")
	ctx := testutil.SetupContext("user_bob")

	resp, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: token,
		Type:  types.ReferralTypeWorkshop,
	})
	s.NoError(err)
	s.Equal("user_alice", resp.ReferrerID)
	s.True(resp.ReferredBySet)
	s.True(resp.RecordAdded)
	s.Equal(int64(5), resp.SignupBonus)
	s.Equal(int64(5), resp.Credits)

	referee, err := s.GetUserStore().Get(ctx, "user_bob")
	s.NoError(err)
	s.Require().NotNil(referee.Metadata.ReferredBy)
	s.Equal("user_alice", referee.Metadata.ReferredBy.UserID)
	s.Equal("Alice", referee.Metadata.ReferredBy.Name)
	s.Equal(int64(5), referee.Metadata.Credits)

	referrer, err := s.GetUserStore().Get(ctx, "user_alice")
	s.NoError(err)
	s.Require().Len(referrer.Metadata.Referrals, 1)
	record := referrer.Metadata.Referrals[0]
	s.Equal("user_bob", record.UserID)
	s.Equal("bob@example.com", record.Email)
	s.Equal(types.ReferralTypeWorkshop, record.Type)
	s.Equal(int64(10), record.CreditValue)
	s.Equal(int64(10), referrer.Metadata.Credits)

	events := s.GetNotifier().Events()
	s.Require().Len(events, 1)
	s.Equal("referral.processed", events[0].Event)
}

func (s *ReferralServiceSuite) TestProcessSignupIsIdempotent() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	s.seedUser("user_bob", "bob@example.com", "Bob")

	token := s.GetTokenCodec().Encode("user_alice")
	ctx := testutil.SetupContext("user_bob")
	req := dto.ProcessSignupRequest{Token: token, Type: types.ReferralTypeEvent}

	_, err := s.service.ProcessSignup(ctx, req)
	s.NoError(err)

	resp, err := s.service.ProcessSignup(ctx, req)
	s.NoError(err)
	s.False(resp.ReferredBySet)
	s.False(resp.RecordAdded)
	s.Zero(resp.SignupBonus)

	referrer, err := s.GetUserStore().Get(ctx, "user_alice")
	s.NoError(err)
	s.Len(referrer.Metadata.Referrals, 1)
	s.Equal(int64(5), referrer.Metadata.Credits)

	referee, err := s.GetUserStore().Get(ctx, "user_bob")
	s.NoError(err)
	s.Equal(int64(5), referee.Metadata.Credits)
}

func (s *ReferralServiceSuite) TestProcessSignupFirstReferrerWins() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	s.seedUser("user_carol", "carol@example.com", "Carol")
	s.seedUser("user_bob", "bob@example.com", "Bob")

	ctx := testutil.SetupContext("user_bob")

	_, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: s.GetTokenCodec().Encode("user_alice"),
	})
	s.NoError(err)

	resp, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: s.GetTokenCodec().Encode("user_carol"),
	})
	s.NoError(err)
	s.False(resp.ReferredBySet)
	s.True(resp.RecordAdded)

	referee, err := s.GetUserStore().Get(ctx, "user_bob")
	s.NoError(err)
	s.Equal("user_alice", referee.Metadata.ReferredBy.UserID)
}

func (s *ReferralServiceSuite) TestProcessSignupRejectsSelfReferral() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	ctx := testutil.SetupContext("user_alice")

	_, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: s.GetTokenCodec().Encode("user_alice"),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ReferralServiceSuite) TestProcessSignupRejectsCircularReferral() {
	s.seedUser("user_bob", "bob@example.com", "Bob")
	s.GetUserStore().CreateUser(&user.User{
		ID:    "user_alice",
		Email: "alice@example.com",
		Name:  "Alice",
		Metadata: user.Metadata{
			SchemaVersion: user.MetadataSchemaVersion,
			ReferredBy:    &user.ReferredBy{UserID: "user_bob", Name: "Bob"},
		},
	})

	ctx := testutil.SetupContext("user_bob")
	_, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: s.GetTokenCodec().Encode("user_alice"),
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ReferralServiceSuite) TestProcessSignupUnknownReferrer() {
	s.seedUser("user_bob", "bob@example.com", "Bob")
	ctx := testutil.SetupContext("user_bob")

	_, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: s.GetTokenCodec().Encode("user_gone"),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ReferralServiceSuite) TestProcessSignupRejectsTamperedToken() {
	s.seedUser("user_bob", "bob@example.com", "Bob")
	ctx := testutil.SetupContext("user_bob")

	token := s.GetTokenCodec().Encode("user_alice")
	_, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: token + "x",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ReferralServiceSuite) TestGetMyReferrals() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	s.seedUser("user_bob", "bob@example.com", "Bob")

	ctx := testutil.SetupContext("user_bob")
	_, err := s.service.ProcessSignup(ctx, dto.ProcessSignupRequest{
		Token: s.GetTokenCodec().Encode("user_alice"),
		Type:  types.ReferralTypeEvent,
	})
	s.NoError(err)

	resp, err := s.service.GetMyReferrals(testutil.SetupContext("user_alice"))
	s.NoError(err)
	s.Equal(int64(5), resp.Credits)
	s.Require().Len(resp.Referrals, 1)
	s.Equal("user_bob", resp.Referrals[0].UserID)

	refereeView, err := s.service.GetMyReferrals(ctx)
	s.NoError(err)
	s.Require().NotNil(refereeView.ReferredBy)
	s.Equal("user_alice", refereeView.ReferredBy.UserID)
	s.Empty(refereeView.Referrals)
}

func (s *ReferralServiceSuite) TestAddCredits() {
	s.seedUser("user_alice", "alice@example.com", "Alice")
	ctx := testutil.SetupContext("user_alice")

	resp, err := s.service.AddCredits(ctx, dto.AddCreditsRequest{Delta: 12})
	s.NoError(err)
	s.Equal(int64(12), resp.Credits)

	resp, err = s.service.AddCredits(ctx, dto.AddCreditsRequest{Delta: -20, Reason: "checkout"})
	s.NoError(err)
	s.Zero(resp.Credits)

	_, err = s.service.AddCredits(ctx, dto.AddCreditsRequest{Delta: 0})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
