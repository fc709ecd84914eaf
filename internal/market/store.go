package market

import (
	"math/rand"
	"sync"
	"time"

	"github.com/esabling477/sura-trading/pkg/logger"
	"github.com/esabling477/sura-trading/pkg/metrics"
)

// Quote is the latest simulated price for one asset. Quotes are only ever
// updated in place; nothing is added or removed after the store is built
// from the catalog.
type Quote struct {
	AssetID      string    `json:"id"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	Price        float64   `json:"current_price"`
	PctChange24h float64   `json:"price_change_percentage_24h"`
	MarketCap    float64   `json:"market_cap,omitempty"`
	Rank         int       `json:"market_cap_rank,omitempty"`
	Image        string    `json:"image"`
	Type         AssetType `json:"type"`
}

// Refresh perturbs every quote in place: price moves by a uniform draw from
// [-0.5%, +0.5%] and the 24h change drifts by a uniform draw from
// [-0.25, +0.25]. This is decorative motion for the dashboard, not a price
// model: no mean reversion, no cross-asset correlation, no bounds clamping.
func Refresh(quotes []Quote, rng *rand.Rand) []Quote {
	for i := range quotes {
		quotes[i].Price *= 1 + (rng.Float64()-0.5)*0.01
		quotes[i].PctChange24h += (rng.Float64() - 0.5) * 0.5
	}
	return quotes
}

// Store holds the in-memory quote board and schedules simulated refreshes.
type Store struct {
	mu          sync.RWMutex
	quotes      []Quote
	byID        map[string]int
	bySymbol    map[string]int
	rng         *rand.Rand
	delay       time.Duration
	lastUpdated time.Time
}

// NewStore builds the quote board from the catalog. delay is the simulated
// upstream latency applied to requested refreshes. A nil rng gets a
// time-seeded source; tests inject a fixed seed for reproducibility.
func NewStore(delay time.Duration, rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	assets := Catalog()
	quotes := make([]Quote, len(assets))
	byID := make(map[string]int, len(assets))
	bySymbol := make(map[string]int, len(assets))
	for i, a := range assets {
		quotes[i] = Quote{
			AssetID:      a.ID,
			Name:         a.Name,
			Symbol:       a.Symbol,
			Price:        a.BasePrice,
			PctChange24h: a.PctChange24h,
			MarketCap:    a.MarketCap,
			Rank:         a.Rank,
			Image:        a.Image,
			Type:         a.Type,
		}
		byID[a.ID] = i
		bySymbol[a.Symbol] = i
	}

	return &Store{
		quotes:      quotes,
		byID:        byID,
		bySymbol:    bySymbol,
		rng:         rng,
		delay:       delay,
		lastUpdated: time.Now(),
	}
}

// Quotes returns a snapshot of all quotes in catalog order.
func (s *Store) Quotes() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// QuoteBySymbol returns the current quote for a ticker symbol.
func (s *Store) QuoteBySymbol(symbol string) (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.bySymbol[symbol]; ok {
		return s.quotes[i], true
	}
	return Quote{}, false
}

// QuoteByID returns the current quote for a catalog asset ID.
func (s *Store) QuoteByID(id string) (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.byID[id]; ok {
		return s.quotes[i], true
	}
	return Quote{}, false
}

// QuoteMap returns the current quotes keyed by asset ID, for valuation.
func (s *Store) QuoteMap() map[string]Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Quote, len(s.quotes))
	for _, q := range s.quotes {
		out[q.AssetID] = q
	}
	return out
}

// LastUpdated returns the time of the most recent refresh pass.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// RefreshNow runs one refresh pass immediately. trigger labels the metrics
// counter ("manual" or "ticker").
func (s *Store) RefreshNow(trigger string) {
	s.mu.Lock()
	Refresh(s.quotes, s.rng)
	s.lastUpdated = time.Now()
	s.mu.Unlock()

	metrics.RecordQuoteRefresh("terminal", trigger)
	logger.Debug().Str("trigger", trigger).Msg("quotes refreshed")
}

// RequestRefresh schedules a refresh pass after the simulated upstream delay.
// Each request schedules independently: two rapid requests produce two
// refresh passes, with no de-duplication and no cancellation.
func (s *Store) RequestRefresh() time.Duration {
	time.AfterFunc(s.delay, func() {
		s.RefreshNow("manual")
	})
	return s.delay
}
