package user

import (
	"time"

	"github.com/samber/lo"
	"github.com/zurichjs/rewards/internal/types"
)

// MetadataSchemaVersion is bumped whenever the metadata shape changes.
// The store adapter rejects documents with a newer version than it
// understands.
const MetadataSchemaVersion = 1

// ReferralRecord is one successful referral, stored append-only on the
// referrer's metadata. At most one record exists per distinct referee.
type ReferralRecord struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"` // the referee
	Email       string             `json:"email"`
	Date        time.Time          `json:"date"`
	Type        types.ReferralType `json:"type"`
	CreditValue int64              `json:"credit_value"`
}

// ReferredBy is the single-valued back-reference on the referee's own
// metadata. Set at most once; the first referrer wins.
type ReferredBy struct {
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
}

// Coupon is a per-user coupon assignment, distinct from the provider's
// coupon object. Codes are unique within one user's list.
type Coupon struct {
	Code       string    `json:"code"`
	AssignedAt time.Time `json:"assigned_at"`
	AssignedBy string    `json:"assigned_by"`
	IsActive   bool      `json:"is_active"`
}

// Metadata is the document this service keeps on each user in the
// external auth provider's metadata store. It is the only durable state
// the service has.
type Metadata struct {
	SchemaVersion int              `json:"schema_version"`
	Credits       int64            `json:"credits"`
	Referrals     []ReferralRecord `json:"referrals,omitempty"`
	ReferredBy    *ReferredBy      `json:"referred_by,omitempty"`
	Coupons       []Coupon         `json:"coupons,omitempty"`
}

// User is the external store's user record plus the parsed metadata
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata"`
}

// NewMetadata returns an empty metadata document at the current schema version
func NewMetadata() Metadata {
	return Metadata{SchemaVersion: MetadataSchemaVersion}
}

// HasReferral reports whether a record for the given referee already exists
func (m *Metadata) HasReferral(refereeID string) bool {
	return lo.ContainsBy(m.Referrals, func(r ReferralRecord) bool {
		return r.UserID == refereeID
	})
}

// CouponByCode returns the assignment with the given code, if any
func (m *Metadata) CouponByCode(code string) (*Coupon, bool) {
	for i := range m.Coupons {
		if m.Coupons[i].Code == code {
			return &m.Coupons[i], true
		}
	}
	return nil, false
}

// AddCredits applies a credit delta. The balance is clamped at zero on
// subtraction.
func (m *Metadata) AddCredits(delta int64) {
	m.Credits += delta
	if m.Credits < 0 {
		m.Credits = 0
	}
}
