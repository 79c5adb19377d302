package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/zurichjs/rewards/internal/api/dto"
	"github.com/zurichjs/rewards/internal/cache"
	"github.com/zurichjs/rewards/internal/domain/coupon"
	"github.com/zurichjs/rewards/internal/domain/user"
	ierr "github.com/zurichjs/rewards/internal/errors"
	"github.com/zurichjs/rewards/internal/types"
)

// CouponService covers the admin coupon lifecycle: provider-level CRUD
// and per-user assignment records, plus admin credit management.
type CouponService interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error)
	ListCoupons(ctx context.Context) (*dto.ListCouponsResponse, error)
	DeleteCoupon(ctx context.Context, id string) error

	AssignCoupon(ctx context.Context, userID string, req dto.AssignCouponRequest) (*dto.UserCouponsResponse, error)
	ToggleCoupon(ctx context.Context, userID string, code string) (*dto.UserCouponsResponse, error)
	RemoveCoupon(ctx context.Context, userID string, code string) (*dto.UserCouponsResponse, error)

	ManageCredits(ctx context.Context, userID string, req dto.ManageCreditsRequest) (*dto.CreditsResponse, error)
}

type couponService struct {
	ServiceParams
}

// NewCouponService creates a new coupon service
func NewCouponService(params ServiceParams) CouponService {
	return &couponService{ServiceParams: params}
}

// CreateCoupon creates a provider-level coupon. A missing code is
// generated as a short human-typeable one.
func (s *couponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	input := req.ToCreateInput()
	if input.Code == "" {
		input.Code = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_COUPON)
	}

	c, err := s.CouponGateway.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("coupon created", "code", c.Code, "created_by", types.GetUserID(ctx))
	s.Notifier.Notify(ctx, "coupon.created", map[string]any{
		"code":       c.Code,
		"created_by": types.GetUserID(ctx),
	})

	return dto.NewCouponResponse(c), nil
}

// ListCoupons returns all provider-level coupons with aggregate stats
func (s *couponService) ListCoupons(ctx context.Context) (*dto.ListCouponsResponse, error) {
	coupons, err := s.CouponGateway.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &dto.ListCouponsResponse{
		Items: lo.Map(coupons, func(c *coupon.Coupon, _ int) *dto.CouponResponse {
			return dto.NewCouponResponse(c)
		}),
		Stats: dto.CouponStats{
			Total: len(coupons),
			Valid: lo.CountBy(coupons, func(c *coupon.Coupon) bool {
				return c.IsUsable(now)
			}),
			TotalRedemptions: lo.SumBy(coupons, func(c *coupon.Coupon) int64 {
				return c.TimesRedeemed
			}),
		},
	}, nil
}

// DeleteCoupon removes a provider-level coupon and drops any cached snapshot
func (s *couponService) DeleteCoupon(ctx context.Context, id string) error {
	if err := s.CouponGateway.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixCoupon, id))
	s.Logger.Infow("coupon deleted", "coupon_id", id, "deleted_by", types.GetUserID(ctx))
	return nil
}

// AssignCoupon adds a coupon assignment to a user's metadata. The code
// must exist at the provider and must not already be assigned to the user.
func (s *couponService) AssignCoupon(ctx context.Context, userID string, req dto.AssignCouponRequest) (*dto.UserCouponsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.CouponGateway.Fetch(ctx, req.Code); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, exists := u.Metadata.CouponByCode(req.Code); exists {
		return nil, ierr.NewError("coupon already assigned").
			WithHintf("User already has coupon %s", req.Code).
			Mark(ierr.ErrAlreadyExists)
	}

	u.Metadata.Coupons = append(u.Metadata.Coupons, user.Coupon{
		Code:       req.Code,
		AssignedAt: time.Now().UTC(),
		AssignedBy: types.GetUserID(ctx),
		IsActive:   true,
	})

	if err := s.UserRepo.UpdateMetadata(ctx, userID, u.Metadata); err != nil {
		return nil, err
	}

	return s.userCouponsResponse(userID, u.Metadata), nil
}

// ToggleCoupon flips an assignment's active flag
func (s *couponService) ToggleCoupon(ctx context.Context, userID string, code string) (*dto.UserCouponsResponse, error) {
	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	assignment, exists := u.Metadata.CouponByCode(code)
	if !exists {
		return nil, ierr.NewError("coupon not assigned").
			WithHintf("User has no coupon %s", code).
			Mark(ierr.ErrNotFound)
	}
	assignment.IsActive = !assignment.IsActive

	if err := s.UserRepo.UpdateMetadata(ctx, userID, u.Metadata); err != nil {
		return nil, err
	}

	return s.userCouponsResponse(userID, u.Metadata), nil
}

// RemoveCoupon removes an assignment by code
func (s *couponService) RemoveCoupon(ctx context.Context, userID string, code string) (*dto.UserCouponsResponse, error) {
	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, exists := u.Metadata.CouponByCode(code); !exists {
		return nil, ierr.NewError("coupon not assigned").
			WithHintf("User has no coupon %s", code).
			Mark(ierr.ErrNotFound)
	}

	u.Metadata.Coupons = lo.Reject(u.Metadata.Coupons, func(c user.Coupon, _ int) bool {
		return c.Code == code
	})

	if err := s.UserRepo.UpdateMetadata(ctx, userID, u.Metadata); err != nil {
		return nil, err
	}

	return s.userCouponsResponse(userID, u.Metadata), nil
}

// ManageCredits applies an admin credit action to a user's balance
func (s *couponService) ManageCredits(ctx context.Context, userID string, req dto.ManageCreditsRequest) (*dto.CreditsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case types.CreditActionSet:
		u.Metadata.Credits = req.Amount
	case types.CreditActionAdd:
		u.Metadata.AddCredits(req.Amount)
	case types.CreditActionRemove:
		u.Metadata.AddCredits(-req.Amount)
	}

	if err := s.UserRepo.UpdateMetadata(ctx, userID, u.Metadata); err != nil {
		return nil, err
	}

	s.Logger.Infow("credits updated",
		"user_id", userID, "action", req.Action, "amount", req.Amount,
		"balance", u.Metadata.Credits, "updated_by", types.GetUserID(ctx))

	return &dto.CreditsResponse{UserID: userID, Credits: u.Metadata.Credits}, nil
}

func (s *couponService) userCouponsResponse(userID string, m user.Metadata) *dto.UserCouponsResponse {
	coupons := m.Coupons
	if coupons == nil {
		coupons = []user.Coupon{}
	}
	return &dto.UserCouponsResponse{UserID: userID, Coupons: coupons}
}
