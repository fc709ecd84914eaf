// Package account manages the user's cash wallet and its transfer history:
// simulated deposits and withdrawals that settle instantly.
package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/esabling477/sura-trading/internal/store"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/logger"
)

// TransferKind distinguishes the two movement directions.
type TransferKind string

const (
	KindDeposit    TransferKind = "deposit"
	KindWithdrawal TransferKind = "withdrawal"
)

// Wallet is the user's cash balance.
type Wallet struct {
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Transfer is one completed wallet movement. Network is set for deposits,
// Address for withdrawals.
type Transfer struct {
	ID        string          `json:"id"`
	Kind      TransferKind    `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Network   string          `json:"network,omitempty"`
	Address   string          `json:"address,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// Service persists wallets and transfer histories per user. Transfers are
// stored newest-first so the history endpoint pages straight off the blob.
type Service struct {
	store *store.Store
	now   func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Wallet returns the user's wallet, zero-balanced if they have none yet.
func (s *Service) Wallet(userID string) (Wallet, error) {
	var w Wallet
	found, err := s.store.Get(store.BucketWallets, userID, &w)
	if err != nil {
		return Wallet{}, err
	}
	if !found {
		w = Wallet{Balance: decimal.Zero, UpdatedAt: s.now()}
	}
	return w, nil
}

// Deposit credits the wallet. The network names where the funds nominally
// arrive from; nothing external is contacted.
func (s *Service) Deposit(userID, network string, amount decimal.Decimal) (Transfer, error) {
	if strings.TrimSpace(network) == "" {
		return Transfer{}, apperrors.ErrValidation.WithDetails("network is required")
	}
	if !amount.IsPositive() {
		return Transfer{}, apperrors.ErrValidation.WithDetails("amount must be positive")
	}

	w, err := s.Wallet(userID)
	if err != nil {
		return Transfer{}, err
	}
	w.Balance = w.Balance.Add(amount)
	w.UpdatedAt = s.now()

	tr := Transfer{
		ID:        uuid.New().String(),
		Kind:      KindDeposit,
		Amount:    amount,
		Network:   network,
		Status:    "completed",
		CreatedAt: s.now(),
	}

	if err := s.commit(userID, w, tr); err != nil {
		return Transfer{}, err
	}

	logger.Info().
		Str("user_id", userID).
		Str("transfer_id", tr.ID).
		Str("amount", amount.String()).
		Msg("deposit completed")
	return tr, nil
}

// Withdraw debits the wallet. The amount must not exceed the balance.
func (s *Service) Withdraw(userID, address string, amount decimal.Decimal) (Transfer, error) {
	if strings.TrimSpace(address) == "" {
		return Transfer{}, apperrors.ErrValidation.WithDetails("address is required")
	}
	if !amount.IsPositive() {
		return Transfer{}, apperrors.ErrValidation.WithDetails("amount must be positive")
	}

	w, err := s.Wallet(userID)
	if err != nil {
		return Transfer{}, err
	}
	if amount.GreaterThan(w.Balance) {
		return Transfer{}, apperrors.ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	w.UpdatedAt = s.now()

	tr := Transfer{
		ID:        uuid.New().String(),
		Kind:      KindWithdrawal,
		Amount:    amount,
		Address:   address,
		Status:    "completed",
		CreatedAt: s.now(),
	}

	if err := s.commit(userID, w, tr); err != nil {
		return Transfer{}, err
	}

	logger.Info().
		Str("user_id", userID).
		Str("transfer_id", tr.ID).
		Str("amount", amount.String()).
		Msg("withdrawal completed")
	return tr, nil
}

func (s *Service) commit(userID string, w Wallet, tr Transfer) error {
	history, err := s.history(userID)
	if err != nil {
		return err
	}
	history = append([]Transfer{tr}, history...)

	if err := s.store.Put(store.BucketTransfers, userID, history); err != nil {
		return err
	}
	return s.store.Put(store.BucketWallets, userID, w)
}

// Transfers returns a page of the user's history, newest first, plus the
// total count.
func (s *Service) Transfers(userID string, page, perPage int) ([]Transfer, int, error) {
	history, err := s.history(userID)
	if err != nil {
		return nil, 0, err
	}

	total := len(history)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	start := (page - 1) * perPage
	if start >= total {
		return []Transfer{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return history[start:end], total, nil
}

func (s *Service) history(userID string) ([]Transfer, error) {
	var history []Transfer
	if _, err := s.store.Get(store.BucketTransfers, userID, &history); err != nil {
		return nil, err
	}
	return history, nil
}
