package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/internal/store"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/logger"
)

// defaultHoldings is the starter portfolio seeded for a user with no stored
// holdings.
func defaultHoldings() []Holding {
	return []Holding{
		{AssetID: "bitcoin", Quantity: decimal.NewFromFloat(0.5)},
		{AssetID: "ethereum", Quantity: decimal.NewFromFloat(2.1)},
		{AssetID: "xau-usd", Quantity: decimal.NewFromFloat(5.0)},
	}
}

// Service persists per-user holdings and values them against the quote
// board. The stored blob is the whole holdings list; every mutation rewrites
// it.
type Service struct {
	store  *store.Store
	quotes *market.Store
}

func NewService(st *store.Store, quotes *market.Store) *Service {
	return &Service{store: st, quotes: quotes}
}

// Holdings returns the user's holdings, seeding the starter portfolio on
// first access.
func (s *Service) Holdings(userID string) ([]Holding, error) {
	var holdings []Holding
	found, err := s.store.Get(store.BucketHoldings, userID, &holdings)
	if err != nil {
		return nil, err
	}
	if !found {
		holdings = defaultHoldings()
		if err := s.store.Put(store.BucketHoldings, userID, holdings); err != nil {
			return nil, err
		}
		logger.Info().Str("user_id", userID).Msg("seeded starter portfolio")
	}
	return holdings, nil
}

// SetQuantity sets the quantity of one holding, adding it if absent. A zero
// or negative quantity removes the position. The asset must exist in the
// catalog.
func (s *Service) SetQuantity(userID, assetID string, quantity decimal.Decimal) ([]Holding, error) {
	if _, ok := market.LookupID(assetID); !ok {
		return nil, apperrors.ErrUnknownAsset.WithDetails("no such asset: " + assetID)
	}

	holdings, err := s.Holdings(userID)
	if err != nil {
		return nil, err
	}

	if !quantity.IsPositive() {
		return s.remove(userID, holdings, assetID)
	}

	updated := false
	for i := range holdings {
		if holdings[i].AssetID == assetID {
			holdings[i].Quantity = quantity
			updated = true
			break
		}
	}
	if !updated {
		holdings = append(holdings, Holding{AssetID: assetID, Quantity: quantity})
	}

	if err := s.store.Put(store.BucketHoldings, userID, holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// Remove drops a position entirely. Removing an asset the user does not hold
// is a no-op.
func (s *Service) Remove(userID, assetID string) ([]Holding, error) {
	holdings, err := s.Holdings(userID)
	if err != nil {
		return nil, err
	}
	return s.remove(userID, holdings, assetID)
}

func (s *Service) remove(userID string, holdings []Holding, assetID string) ([]Holding, error) {
	out := holdings[:0]
	for _, h := range holdings {
		if h.AssetID != assetID {
			out = append(out, h)
		}
	}
	if err := s.store.Put(store.BucketHoldings, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Valuation prices the user's current holdings.
func (s *Service) Valuation(userID string) (Valuation, error) {
	holdings, err := s.Holdings(userID)
	if err != nil {
		return Valuation{}, err
	}
	return Valuate(holdings, s.quotes.QuoteMap()), nil
}
