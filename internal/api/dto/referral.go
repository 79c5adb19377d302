package dto

import (
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/types"
	"github.com/zurichjs/rewards/internal/validator"
)

// ReferralTokenResponse carries a signed referral token and the full
// share link
type ReferralTokenResponse struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

// ProcessSignupRequest finalizes a referral after the referee signed up.
// The referee is the authenticated caller; the token identifies the
// referrer.
type ProcessSignupRequest struct {
	Token string             `json:"token" validate:"required"`
	Type  types.ReferralType `json:"type,omitempty"`
}

func (r *ProcessSignupRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Type == "" {
		r.Type = types.ReferralTypeOther
	}
	return r.Type.Validate()
}

// ProcessSignupResponse reports what the signup processing changed.
// Repeat calls return success with both flags false.
type ProcessSignupResponse struct {
	ReferrerID    string `json:"referrer_id"`
	ReferredBySet bool   `json:"referred_by_set"`
	RecordAdded   bool   `json:"record_added"`
	SignupBonus   int64  `json:"signup_bonus"`
	Credits       int64  `json:"credits"`
}

// MyReferralsResponse is the caller's referral ledger view
type MyReferralsResponse struct {
	Credits    int64                 `json:"credits"`
	ReferredBy *user.ReferredBy      `json:"referred_by,omitempty"`
	Referrals  []user.ReferralRecord `json:"referrals"`
}

// AddCreditsRequest applies a credit delta to the caller's own balance,
// e.g. redeeming credits at checkout. The balance never goes negative.
type AddCreditsRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

func (r *AddCreditsRequest) Validate() error {
	if r.Delta == 0 {
		return ierr.NewError("delta must be non-zero").
			WithHint("Please provide a non-zero credit delta").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreditsResponse is a user's credit balance after a mutation
type CreditsResponse struct {
	UserID  string `json:"user_id"`
	Credits int64  `json:"credits"`
}
