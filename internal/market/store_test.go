package market

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esabling477/sura-trading/pkg/logger"
)

func init() {
	logger.Init("test", "error", false)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(10*time.Millisecond, rand.New(rand.NewSource(42)))
}

func TestNewStore_SeedsFromCatalog(t *testing.T) {
	s := newTestStore(t)

	quotes := s.Quotes()
	require.Len(t, quotes, len(Catalog()))

	btc, ok := s.QuoteBySymbol("BTC")
	require.True(t, ok)
	assert.Equal(t, "bitcoin", btc.AssetID)
	assert.Equal(t, 111384.0, btc.Price)
	assert.Equal(t, 1.74, btc.PctChange24h)
	assert.Equal(t, 1, btc.Rank)

	gold, ok := s.QuoteByID("xau-usd")
	require.True(t, ok)
	assert.Equal(t, "XAU/USD", gold.Symbol)
	assert.Equal(t, AssetCommodity, gold.Type)

	_, ok = s.QuoteBySymbol("NOPE")
	assert.False(t, ok)
}

func TestRefresh_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	quotes := []Quote{
		{AssetID: "bitcoin", Price: 111384, PctChange24h: 1.74},
		{AssetID: "dogecoin", Price: 0.217, PctChange24h: -2.73},
	}
	base := make([]Quote, len(quotes))
	copy(base, quotes)

	for pass := 0; pass < 100; pass++ {
		prev := make([]Quote, len(quotes))
		copy(prev, quotes)
		Refresh(quotes, rng)

		for i := range quotes {
			ratio := quotes[i].Price / prev[i].Price
			assert.InDelta(t, 1.0, ratio, 0.005, "price moves at most half a percent per pass")
			drift := quotes[i].PctChange24h - prev[i].PctChange24h
			assert.LessOrEqual(t, drift, 0.25)
			assert.GreaterOrEqual(t, drift, -0.25)
		}
	}
}

func TestRefresh_Deterministic(t *testing.T) {
	a := []Quote{{Price: 100, PctChange24h: 1}}
	b := []Quote{{Price: 100, PctChange24h: 1}}

	Refresh(a, rand.New(rand.NewSource(99)))
	Refresh(b, rand.New(rand.NewSource(99)))

	assert.Equal(t, a[0].Price, b[0].Price)
	assert.Equal(t, a[0].PctChange24h, b[0].PctChange24h)
}

func TestRefreshNow_UpdatesAllAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	before := s.Quotes()
	stamp := s.LastUpdated()

	time.Sleep(time.Millisecond)
	s.RefreshNow("manual")

	after := s.Quotes()
	changed := 0
	for i := range after {
		if after[i].Price != before[i].Price {
			changed++
		}
	}
	assert.Greater(t, changed, len(after)/2, "a refresh pass should move most prices")
	assert.True(t, s.LastUpdated().After(stamp))
}

func TestRequestRefresh_AppliesAfterDelay(t *testing.T) {
	s := newTestStore(t)
	before, _ := s.QuoteBySymbol("BTC")

	delay := s.RequestRefresh()
	assert.Equal(t, 10*time.Millisecond, delay)

	// Not yet applied.
	mid, _ := s.QuoteBySymbol("BTC")
	assert.Equal(t, before.Price, mid.Price)

	assert.Eventually(t, func() bool {
		q, _ := s.QuoteBySymbol("BTC")
		return q.Price != before.Price
	}, time.Second, 2*time.Millisecond)
}

func TestRequestRefresh_NoDedup(t *testing.T) {
	s := newTestStore(t)

	// Two rapid requests both land; each applies its own pass.
	s.RequestRefresh()
	s.RequestRefresh()

	time.Sleep(50 * time.Millisecond)
	// Nothing to assert beyond absence of panics and a moved board; the
	// scheduling itself is independent AfterFunc timers.
	q, _ := s.QuoteBySymbol("BTC")
	assert.NotEqual(t, 111384.0, q.Price)
}

func TestQuoteMap(t *testing.T) {
	s := newTestStore(t)

	m := s.QuoteMap()
	require.Len(t, m, len(Catalog()))
	assert.Equal(t, "BTC", m["bitcoin"].Symbol)
	assert.Equal(t, "ETH", m["ethereum"].Symbol)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.RefreshNow("ticker")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Quotes()
				_, _ = s.QuoteBySymbol("BTC")
				_ = s.QuoteMap()
			}
		}()
	}
	wg.Wait()
}

func TestCatalogLookups(t *testing.T) {
	a, ok := LookupSymbol("btc")
	require.True(t, ok, "symbol lookup is case-insensitive")
	assert.Equal(t, "bitcoin", a.ID)

	a, ok = LookupSymbol("eur/usd")
	require.True(t, ok)
	assert.Equal(t, "eur-usd", a.ID)

	_, ok = LookupID("unknown")
	assert.False(t, ok)

	assert.Equal(t, 2645.30, BasePrice("XAU/USD"))
	assert.Equal(t, float64(DefaultBasePrice), BasePrice("UNLISTED"))

	assert.True(t, IsPair("EUR/USD"))
	assert.False(t, IsPair("BTC"))
}
