package portfolio

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/internal/store"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	quotes := market.NewStore(time.Millisecond, rand.New(rand.NewSource(1)))
	return NewService(st, quotes)
}

func TestHoldings_SeedsDefaults(t *testing.T) {
	s := newTestService(t)

	holdings, err := s.Holdings("u1")
	require.NoError(t, err)
	require.Len(t, holdings, 3)

	assert.Equal(t, "bitcoin", holdings[0].AssetID)
	assert.True(t, holdings[0].Quantity.Equal(decimal.NewFromFloat(0.5)))
	assert.Equal(t, "ethereum", holdings[1].AssetID)
	assert.True(t, holdings[1].Quantity.Equal(decimal.NewFromFloat(2.1)))
	assert.Equal(t, "xau-usd", holdings[2].AssetID)
	assert.True(t, holdings[2].Quantity.Equal(decimal.NewFromFloat(5.0)))

	// The seed persists: a second read returns the stored list, not a new seed.
	again, err := s.Holdings("u1")
	require.NoError(t, err)
	assert.Equal(t, holdings, again)
}

func TestSetQuantity(t *testing.T) {
	s := newTestService(t)

	holdings, err := s.SetQuantity("u1", "bitcoin", decimal.NewFromFloat(1.25))
	require.NoError(t, err)
	assert.True(t, holdings[0].Quantity.Equal(decimal.NewFromFloat(1.25)))

	// New asset appends.
	holdings, err = s.SetQuantity("u1", "solana", decimal.NewFromFloat(10))
	require.NoError(t, err)
	require.Len(t, holdings, 4)
	assert.Equal(t, "solana", holdings[3].AssetID)
}

func TestSetQuantity_UnknownAsset(t *testing.T) {
	s := newTestService(t)

	_, err := s.SetQuantity("u1", "ghost", decimal.NewFromFloat(1))
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnknownAsset.Code, appErr.Code)
}

func TestSetQuantity_NonPositiveRemoves(t *testing.T) {
	s := newTestService(t)

	holdings, err := s.SetQuantity("u1", "ethereum", decimal.Zero)
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	for _, h := range holdings {
		assert.NotEqual(t, "ethereum", h.AssetID)
	}
}

func TestRemove(t *testing.T) {
	s := newTestService(t)

	holdings, err := s.Remove("u1", "bitcoin")
	require.NoError(t, err)
	assert.Len(t, holdings, 2)

	// Removing an asset the user does not hold is a no-op.
	holdings, err = s.Remove("u1", "bitcoin")
	require.NoError(t, err)
	assert.Len(t, holdings, 2)
}

func TestValuation_EndToEnd(t *testing.T) {
	s := newTestService(t)

	v, err := s.Valuation("u1")
	require.NoError(t, err)
	require.Len(t, v.Holdings, 3)

	// Starter portfolio against catalog base prices:
	// 0.5*111384 + 2.1*4383.05 + 5*2645.30
	total, _ := v.TotalValue.Float64()
	assert.InDelta(t, 55692+9204.405+13226.5, total, 1e-6)

	sum := 0.0
	for _, h := range v.Holdings {
		alloc, _ := h.AllocationPct.Float64()
		sum += alloc
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestHoldings_PerUserIsolation(t *testing.T) {
	s := newTestService(t)

	_, err := s.SetQuantity("u1", "bitcoin", decimal.NewFromFloat(9))
	require.NoError(t, err)

	other, err := s.Holdings("u2")
	require.NoError(t, err)
	assert.True(t, other[0].Quantity.Equal(decimal.NewFromFloat(0.5)), "u2 still has the starter seed")
}
