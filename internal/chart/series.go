// Package chart generates simulated OHLC history and renders it to PNG
// candlestick and line charts, including the hover overlay (crosshair and
// tooltip) the dashboard draws on top.
package chart

import (
	"math"
	"math/rand"
	"time"

	"github.com/esabling477/sura-trading/internal/market"
)

// Point is one day of simulated history for a symbol.
type Point struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int       `json:"volume"`
}

// Generator produces random-walk history series. The clock and the random
// source are injectable for tests.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator returns a generator with a time-seeded source. Pass a nil rng
// or now to get the defaults.
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Series generates days+1 daily points ending today, walking around the
// symbol's catalog base price. The walk narrows linearly toward the present,
// so the oldest point wanders up to ±5% and today's close sits on the base
// exactly. Unknown symbols use the catalog default base price.
func (g *Generator) Series(symbol string, days int) []Point {
	base := market.BasePrice(symbol)
	precision := 2
	if market.IsPair(symbol) {
		precision = 4
	}

	now := g.now()
	points := make([]Point, 0, days+1)
	for i := 0; i <= days; i++ {
		variation := (g.rng.Float64() - 0.5) * 0.1 * (float64(days-i) / float64(days))
		price := base * (1 + variation)

		points = append(points, Point{
			Time:   now.AddDate(0, 0, -(days - i)),
			Open:   roundTo(price*0.995, precision),
			High:   roundTo(price*1.01, precision),
			Low:    roundTo(price*0.99, precision),
			Close:  roundTo(price, precision),
			Volume: g.rng.Intn(1000000) + 100000,
		})
	}
	return points
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
