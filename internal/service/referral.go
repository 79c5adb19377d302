package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zurichjs/rewards/internal/api/dto"
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/types"
)

// DefaultSignupBonus is granted to the referee when no bonus is configured
const DefaultSignupBonus = 5

// ReferralService issues referral tokens and maintains the referral
// ledger in the external user-metadata store.
type ReferralService interface {
	CreateToken(ctx context.Context) (*dto.ReferralTokenResponse, error)
	ProcessSignup(ctx context.Context, req dto.ProcessSignupRequest) (*dto.ProcessSignupResponse, error)
	GetMyReferrals(ctx context.Context) (*dto.MyReferralsResponse, error)
	AddCredits(ctx context.Context, req dto.AddCreditsRequest) (*dto.CreditsResponse, error)
}

type referralService struct {
	ServiceParams
}

// NewReferralService creates a new referral service
func NewReferralService(params ServiceParams) ReferralService {
	return &referralService{ServiceParams: params}
}

// CreateToken issues a signed referral token and share link for the caller
func (s *referralService) CreateToken(ctx context.Context) (*dto.ReferralTokenResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("missing user in context").
			Mark(ierr.ErrUnauthorized)
	}

	token := s.TokenCodec.Encode(userID)
	return &dto.ReferralTokenResponse{
		Token: token,
		Link:  fmt.Sprintf("%s?ref=%s", s.Config.Referral.LinkBaseURL, token),
	}, nil
}

// ProcessSignup finalizes a referral after the referee (the caller)
// signed up. The operation is idempotent: the referee's back-reference
// is set at most once and the referrer holds at most one record per
// referee, so repeat calls converge without double-granting credits.
//
// The two metadata writes (referee, then referrer) are not transactional;
// a failure between them leaves the referee updated and the referrer
// uncredited, which a retry repairs.
func (s *referralService) ProcessSignup(ctx context.Context, req dto.ProcessSignupRequest) (*dto.ProcessSignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	refereeID := types.GetUserID(ctx)
	if refereeID == "" {
		return nil, ierr.NewError("missing user in context").
			Mark(ierr.ErrUnauthorized)
	}

	referrerID, err := s.TokenCodec.Decode(req.Token)
	if err != nil {
		return nil, err
	}

	if referrerID == refereeID {
		return nil, ierr.NewError("self-referral rejected").
			WithHint("You cannot refer yourself").
			Mark(ierr.ErrInvalidOperation)
	}

	referrer, err := s.UserRepo.Get(ctx, referrerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("referrer not found").
				WithHint("Referral link is no longer valid").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}

	if referrer.Metadata.ReferredBy != nil && referrer.Metadata.ReferredBy.UserID == refereeID {
		return nil, ierr.NewError("circular referral rejected").
			WithHint("You cannot refer the person who referred you").
			Mark(ierr.ErrInvalidOperation)
	}

	referee, err := s.UserRepo.Get(ctx, refereeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bonus := s.signupBonus()
	resp := &dto.ProcessSignupResponse{ReferrerID: referrerID}

	// Step 1: mark the referee as referred and grant the signup bonus.
	// First referrer wins; a repeat call finds ReferredBy set and skips.
	if referee.Metadata.ReferredBy == nil {
		referee.Metadata.ReferredBy = &user.ReferredBy{
			UserID: referrerID,
			Name:   referrer.Name,
			Date:   now,
		}
		referee.Metadata.AddCredits(bonus)
		if err := s.UserRepo.UpdateMetadata(ctx, refereeID, referee.Metadata); err != nil {
			s.Logger.Errorw("failed to update referee metadata",
				"referee_id", refereeID, "referrer_id", referrerID, "error", err)
			return nil, err
		}
		resp.ReferredBySet = true
		resp.SignupBonus = bonus
	}

	// Step 2: credit the referrer, deduped by referee ID
	if !referrer.Metadata.HasReferral(refereeID) {
		record := user.ReferralRecord{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REFERRAL_RECORD),
			UserID:      refereeID,
			Email:       referee.Email,
			Date:        now,
			Type:        req.Type,
			CreditValue: req.Type.CreditValue(),
		}
		referrer.Metadata.Referrals = append(referrer.Metadata.Referrals, record)
		referrer.Metadata.AddCredits(record.CreditValue)
		if err := s.UserRepo.UpdateMetadata(ctx, referrerID, referrer.Metadata); err != nil {
			s.Logger.Errorw("failed to credit referrer",
				"referee_id", refereeID, "referrer_id", referrerID, "error", err)
			return nil, err
		}
		resp.RecordAdded = true
	}

	resp.Credits = referee.Metadata.Credits

	if resp.RecordAdded {
		s.Notifier.Notify(ctx, "referral.processed", map[string]any{
			"referrer_id": referrerID,
			"referee_id":  refereeID,
			"type":        string(req.Type),
		})
	}

	return resp, nil
}

// GetMyReferrals returns the caller's referral ledger view
func (s *referralService) GetMyReferrals(ctx context.Context) (*dto.MyReferralsResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("missing user in context").
			Mark(ierr.ErrUnauthorized)
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	referrals := u.Metadata.Referrals
	if referrals == nil {
		referrals = []user.ReferralRecord{}
	}

	return &dto.MyReferralsResponse{
		Credits:    u.Metadata.Credits,
		ReferredBy: u.Metadata.ReferredBy,
		Referrals:  referrals,
	}, nil
}

// AddCredits applies a credit delta to the caller's own balance
func (s *referralService) AddCredits(ctx context.Context, req dto.AddCreditsRequest) (*dto.CreditsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("missing user in context").
			Mark(ierr.ErrUnauthorized)
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Metadata.AddCredits(req.Delta)
	if err := s.UserRepo.UpdateMetadata(ctx, userID, u.Metadata); err != nil {
		return nil, err
	}

	return &dto.CreditsResponse{UserID: userID, Credits: u.Metadata.Credits}, nil
}

func (s *referralService) signupBonus() int64 {
	if s.Config.Referral.SignupBonus > 0 {
		return s.Config.Referral.SignupBonus
	}
	return DefaultSignupBonus
}
