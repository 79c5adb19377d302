package types

import (
	ierr "github.com/zurichjs/rewards/internal/errors"
)

// ReferralType classifies what the referee signed up for
type ReferralType string

const (
	ReferralTypeWorkshop ReferralType = "workshop"
	ReferralTypeEvent    ReferralType = "event"
	ReferralTypeOther    ReferralType = "other"
)

func (t ReferralType) Validate() error {
	switch t {
	case ReferralTypeWorkshop, ReferralTypeEvent, ReferralTypeOther:
		return nil
	default:
		return ierr.NewError("invalid referral type").
			WithHintf("Referral type must be one of workshop, event, other, got %s", t).
			Mark(ierr.ErrValidation)
	}
}

// CreditValue is the referrer's reward for a successful referral of
// the given kind.
func (t ReferralType) CreditValue() int64 {
	switch t {
	case ReferralTypeWorkshop:
		return 10
	case ReferralTypeEvent:
		return 5
	default:
		return 3
	}
}

// CreditAction is the admin credit-management operation selector
type CreditAction string

const (
	CreditActionSet    CreditAction = "set"
	CreditActionAdd    CreditAction = "add"
	CreditActionRemove CreditAction = "remove"
)

func (a CreditAction) Validate() error {
	switch a {
	case CreditActionSet, CreditActionAdd, CreditActionRemove:
		return nil
	default:
		return ierr.NewError("invalid credit action").
			WithHintf("Credit action must be one of set, add, remove, got %s", a).
			Mark(ierr.ErrValidation)
	}
}
