package market

import "strings"

type AssetType string

const (
	AssetCrypto    AssetType = "crypto"
	AssetForex     AssetType = "forex"
	AssetCommodity AssetType = "commodity"
)

// Asset is a catalog entry: the listing metadata plus the opening mock price
// the simulator starts from. There is no upstream market-data provider; the
// catalog is the universe.
type Asset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	BasePrice    float64   `json:"base_price"`
	PctChange24h float64   `json:"pct_change_24h"`
	MarketCap    float64   `json:"market_cap,omitempty"`
	Rank         int       `json:"rank,omitempty"`
	Image        string    `json:"image"`
	Type         AssetType `json:"type"`
}

// DefaultBasePrice is used when a chart is requested for a symbol the catalog
// does not know.
const DefaultBasePrice = 100

var catalog = []Asset{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", BasePrice: 111384, PctChange24h: 1.74, MarketCap: 2198456789012, Rank: 1, Image: "https://assets.coingecko.com/coins/images/1/large/bitcoin.png", Type: AssetCrypto},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", BasePrice: 4383.05, PctChange24h: -1.31, MarketCap: 526789123456, Rank: 2, Image: "https://assets.coingecko.com/coins/images/279/large/ethereum.png", Type: AssetCrypto},
	{ID: "ripple", Name: "XRP", Symbol: "XRP", BasePrice: 2.85, PctChange24h: 2.71, MarketCap: 161234567890, Rank: 3, Image: "https://assets.coingecko.com/coins/images/44/large/xrp-symbol-white-128.png", Type: AssetCrypto},
	{ID: "tether", Name: "Tether", Symbol: "USDT", BasePrice: 1.00, PctChange24h: 0.02, MarketCap: 136789012345, Rank: 4, Image: "https://assets.coingecko.com/coins/images/325/large/Tether.png", Type: AssetCrypto},
	{ID: "binancecoin", Name: "BNB", Symbol: "BNB", BasePrice: 554.77, PctChange24h: 1.11, MarketCap: 82345678901, Rank: 5, Image: "https://assets.coingecko.com/coins/images/825/large/bnb-icon2_2x.png", Type: AssetCrypto},
	{ID: "solana", Name: "Solana", Symbol: "SOL", BasePrice: 211.83, PctChange24h: 4.54, MarketCap: 98765432109, Rank: 6, Image: "https://assets.coingecko.com/coins/images/4128/large/solana.png", Type: AssetCrypto},
	{ID: "usd-coin", Name: "USDC", Symbol: "USDC", BasePrice: 1.00, PctChange24h: -0.06, MarketCap: 34567890123, Rank: 7, Image: "https://assets.coingecko.com/coins/images/6319/large/USD_Coin_icon.png", Type: AssetCrypto},
	{ID: "staked-ether", Name: "Lido Staked Ether", Symbol: "STETH", BasePrice: 4372.16, PctChange24h: 1.69, MarketCap: 42876543210, Rank: 8, Image: "https://assets.coingecko.com/coins/images/13442/large/steth_logo.png", Type: AssetCrypto},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", BasePrice: 0.217, PctChange24h: -2.73, MarketCap: 31987654321, Rank: 9, Image: "https://assets.coingecko.com/coins/images/5/large/dogecoin.png", Type: AssetCrypto},
	{ID: "tron", Name: "TRON", Symbol: "TRX", BasePrice: 0.34, PctChange24h: 29.74, MarketCap: 29123456789, Rank: 10, Image: "https://assets.coingecko.com/coins/images/1094/large/tron-logo.png", Type: AssetCrypto},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", BasePrice: 0.852, PctChange24h: 2.26, MarketCap: 29876543210, Rank: 11, Image: "https://assets.coingecko.com/coins/images/975/large/cardano.png", Type: AssetCrypto},
	{ID: "wrapped-steth", Name: "Wrapped stETH", Symbol: "WSTETH", BasePrice: 5299.39, PctChange24h: 1.86, MarketCap: 21234567890, Rank: 12, Image: "https://assets.coingecko.com/coins/images/18834/large/wsteth.png", Type: AssetCrypto},
	{ID: "chainlink", Name: "Chainlink", Symbol: "LINK", BasePrice: 23.49, PctChange24h: 1.58, MarketCap: 15678901234, Rank: 13, Image: "https://assets.coingecko.com/coins/images/877/large/chainlink-new-logo.png", Type: AssetCrypto},

	{ID: "xau-usd", Name: "Gold", Symbol: "XAU/USD", BasePrice: 2645.30, PctChange24h: 0.45, Image: "https://s3-symbol-logo.tradingview.com/metal/gold--600.png", Type: AssetCommodity},
	{ID: "eur-usd", Name: "Euro US Dollar", Symbol: "EUR/USD", BasePrice: 1.0856, PctChange24h: -0.12, Image: "https://s3-symbol-logo.tradingview.com/country/US--300.png", Type: AssetForex},
	{ID: "gbp-usd", Name: "British Pound US Dollar", Symbol: "GBP/USD", BasePrice: 1.2734, PctChange24h: 0.23, Image: "https://s3-symbol-logo.tradingview.com/country/GB--300.png", Type: AssetForex},
	{ID: "usd-jpy", Name: "US Dollar Japanese Yen", Symbol: "USD/JPY", BasePrice: 148.92, PctChange24h: 0.67, Image: "https://s3-symbol-logo.tradingview.com/country/JP--300.png", Type: AssetForex},
	{ID: "xag-usd", Name: "Silver", Symbol: "XAG/USD", BasePrice: 31.42, PctChange24h: 1.23, Image: "https://s3-symbol-logo.tradingview.com/metal/silver--600.png", Type: AssetCommodity},
	{ID: "usd-cad", Name: "US Dollar Canadian Dollar", Symbol: "USD/CAD", BasePrice: 1.3567, PctChange24h: -0.18, Image: "https://s3-symbol-logo.tradingview.com/country/CA--300.png", Type: AssetForex},
	{ID: "aud-usd", Name: "Australian Dollar US Dollar", Symbol: "AUD/USD", BasePrice: 0.6789, PctChange24h: 0.34, Image: "https://s3-symbol-logo.tradingview.com/country/AU--300.png", Type: AssetForex},
}

// Catalog returns all listed assets in display order.
func Catalog() []Asset {
	out := make([]Asset, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSymbol finds an asset by its ticker symbol, case-insensitively.
func LookupSymbol(symbol string) (Asset, bool) {
	for _, a := range catalog {
		if strings.EqualFold(a.Symbol, symbol) {
			return a, true
		}
	}
	return Asset{}, false
}

// LookupID finds an asset by its catalog ID.
func LookupID(id string) (Asset, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// BasePrice resolves the chart base price for a symbol, falling back to
// DefaultBasePrice for unknown symbols.
func BasePrice(symbol string) float64 {
	if a, ok := LookupSymbol(symbol); ok {
		return a.BasePrice
	}
	return DefaultBasePrice
}

// IsPair reports whether a symbol denotes a currency pair, which changes
// display precision from 2 to 4 fraction digits.
func IsPair(symbol string) bool {
	return strings.Contains(symbol, "/")
}
