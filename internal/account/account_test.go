package account

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esabling477/sura-trading/internal/store"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/logger"
)

func init() {
	logger.Init("test", "error", false)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func TestWallet_StartsEmpty(t *testing.T) {
	s := newTestService(t)

	w, err := s.Wallet("u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
}

func TestDeposit(t *testing.T) {
	s := newTestService(t)

	tr, err := s.Deposit("u1", "Bitcoin", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, KindDeposit, tr.Kind)
	assert.Equal(t, "Bitcoin", tr.Network)
	assert.Equal(t, "completed", tr.Status)
	assert.NotEmpty(t, tr.ID)

	w, err := s.Wallet("u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(500)))
}

func TestDeposit_Validation(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deposit("u1", "", decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = s.Deposit("u1", "Bitcoin", decimal.Zero)
	assert.Error(t, err)

	_, err = s.Deposit("u1", "Bitcoin", decimal.NewFromInt(-5))
	assert.Error(t, err)
}

func TestWithdraw(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deposit("u1", "Ethereum", decimal.NewFromInt(300))
	require.NoError(t, err)

	tr, err := s.Withdraw("u1", "0xabc123", decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.Equal(t, KindWithdrawal, tr.Kind)
	assert.Equal(t, "0xabc123", tr.Address)

	w, err := s.Wallet("u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(180)))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deposit("u1", "Bitcoin", decimal.NewFromInt(50))
	require.NoError(t, err)

	_, err = s.Withdraw("u1", "0xabc", decimal.NewFromInt(51))
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrInsufficientFunds.Code, appErr.Code)

	// Balance untouched and no transfer recorded.
	w, err := s.Wallet("u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(50)))

	history, total, err := s.Transfers("u1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, history, 1)
}

func TestWithdraw_ExactBalance(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deposit("u1", "Bitcoin", decimal.NewFromInt(75))
	require.NoError(t, err)

	_, err = s.Withdraw("u1", "0xabc", decimal.NewFromInt(75))
	require.NoError(t, err)

	w, err := s.Wallet("u1")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
}

func TestWithdraw_Validation(t *testing.T) {
	s := newTestService(t)

	_, err := s.Withdraw("u1", "", decimal.NewFromInt(1))
	assert.Error(t, err)

	_, err = s.Withdraw("u1", "0xabc", decimal.Zero)
	assert.Error(t, err)
}

func TestTransfers_NewestFirstAndPaging(t *testing.T) {
	s := newTestService(t)

	for i := 1; i <= 5; i++ {
		_, err := s.Deposit("u1", "Bitcoin", decimal.NewFromInt(int64(i)))
		require.NoError(t, err)
	}

	page, total, err := s.Transfers("u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.True(t, page[0].Amount.Equal(decimal.NewFromInt(5)), "newest first")
	assert.True(t, page[1].Amount.Equal(decimal.NewFromInt(4)))

	page, _, err = s.Transfers("u1", 3, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, page[0].Amount.Equal(decimal.NewFromInt(1)))

	// Past the end returns an empty page, not an error.
	page, _, err = s.Transfers("u1", 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestWallet_PerUserIsolation(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deposit("u1", "Bitcoin", decimal.NewFromInt(100))
	require.NoError(t, err)

	w, err := s.Wallet("u2")
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
}
