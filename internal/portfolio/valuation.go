// Package portfolio values user holdings against the live quote board.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// Holding is one position: an asset and how much of it the user owns.
type Holding struct {
	AssetID  string          `json:"asset_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ValuedHolding is a holding priced against the current quote.
type ValuedHolding struct {
	AssetID       string          `json:"asset_id"`
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Image         string          `json:"image"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Value         decimal.Decimal `json:"value"`
	ChangeValue   decimal.Decimal `json:"change_value"`
	ChangePct     float64         `json:"change_pct"`
	AllocationPct decimal.Decimal `json:"allocation_pct"`
}

// Valuation is the priced portfolio with its totals.
type Valuation struct {
	Holdings         []ValuedHolding `json:"holdings"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalChangeValue decimal.Decimal `json:"total_change_value"`
	TotalChangePct   float64         `json:"total_change_pct"`
}

// Valuate prices holdings against the quote board. Holdings whose asset has
// no quote are dropped with a warning rather than valued at zero, so a
// catalog mismatch can't silently deflate the total. Allocation percentages
// are shares of the included total and sum to 100 when it is positive.
func Valuate(holdings []Holding, quotes map[string]market.Quote) Valuation {
	valued := make([]ValuedHolding, 0, len(holdings))
	total := decimal.Zero
	totalChange := decimal.Zero

	for _, h := range holdings {
		q, ok := quotes[h.AssetID]
		if !ok {
			logger.Warn().Str("asset_id", h.AssetID).Msg("holding has no quote, skipping")
			continue
		}

		price := decimal.NewFromFloat(q.Price)
		value := h.Quantity.Mul(price)

		// change over 24h, recovered from the percentage: a -100% move has
		// no finite previous value, so it reports zero change.
		change := decimal.Zero
		if q.PctChange24h == -100 {
			logger.Warn().Str("asset_id", h.AssetID).Msg("quote reports -100% change, treating change value as zero")
		} else {
			divisor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(q.PctChange24h).Div(hundred))
			prev := value.DivRound(divisor, 12)
			change = value.Sub(prev)
		}

		valued = append(valued, ValuedHolding{
			AssetID:     h.AssetID,
			Name:        q.Name,
			Symbol:      q.Symbol,
			Image:       q.Image,
			Quantity:    h.Quantity,
			Price:       price,
			Value:       value,
			ChangeValue: change,
			ChangePct:   q.PctChange24h,
		})
		total = total.Add(value)
		totalChange = totalChange.Add(change)
	}

	for i := range valued {
		if total.IsPositive() {
			valued[i].AllocationPct = valued[i].Value.Div(total).Mul(hundred)
		} else {
			valued[i].AllocationPct = decimal.Zero
		}
	}

	totalPct := 0.0
	prevTotal := total.Sub(totalChange)
	if prevTotal.IsPositive() {
		pct, _ := totalChange.Div(prevTotal).Mul(hundred).Float64()
		totalPct = pct
	}

	return Valuation{
		Holdings:         valued,
		TotalValue:       total,
		TotalChangeValue: totalChange,
		TotalChangePct:   totalPct,
	}
}
