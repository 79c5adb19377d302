package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ierr "github.com/zurichjs/rewards/internal/errors"
)

func testPeriods(t1, t2 time.Time) []PricingPeriod {
	return []PricingPeriod{
		{Title: "Early Bird", DiscountPercent: decimal.NewFromInt(20), ExpiresAt: t1},
		{Title: "Standard", DiscountPercent: decimal.Zero, ExpiresAt: t2},
	}
}

func TestResolveActivePeriod(t *testing.T) {
	t1 := time.Date(2025, 9, 1, 23, 59, 0, 0, time.UTC)
	t2 := time.Date(2025, 9, 15, 23, 59, 0, 0, time.UTC)
	periods := testPeriods(t1, t2)

	t.Run("before first expiration returns first period", func(t *testing.T) {
		p, err := ResolveActivePeriod(periods, t1.Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "Early Bird", p.Title)
	})

	t.Run("between expirations returns second period", func(t *testing.T) {
		p, err := ResolveActivePeriod(periods, t1.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "Standard", p.Title)
	})

	t.Run("exactly at expiration instant moves to next period", func(t *testing.T) {
		p, err := ResolveActivePeriod(periods, t1)
		require.NoError(t, err)
		assert.Equal(t, "Standard", p.Title)
	})

	t.Run("after all expirations falls back to last period", func(t *testing.T) {
		p, err := ResolveActivePeriod(periods, t2.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "Standard", p.Title)
	})

	t.Run("empty list is invalid configuration", func(t *testing.T) {
		_, err := ResolveActivePeriod(nil, time.Now())
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}
