package format

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		symbol string
		want   string
	}{
		{"pair uses four digits no dollar", 1.0856, "EUR/USD", "1.0856"},
		{"pair grouped", 2645.3, "XAU/USD", "2,645.3000"},
		{"large price two digits", 1234.5, "BTC", "$1,234.50"},
		{"btc price grouped", 111384, "BTC", "$111,384.00"},
		{"mid price three digits", 0.5, "DOGE", "$0.500"},
		{"mid price three digits above one", 2.85, "XRP", "$2.850"},
		{"one cent still three digits", 0.01, "DOGE", "$0.010"},
		{"sub cent four digits minimum", 0.009, "SHIB", "$0.0090"},
		{"tiny price four digits minimum", 0.0005, "SHIB", "$0.0005"},
		{"tiny price up to six digits", 0.000123, "SHIB", "$0.000123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price, tt.symbol); got != tt.want {
				t.Errorf("FormatPrice(%v, %q) = %q, want %q", tt.price, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		marketCap float64
		want      string
	}{
		{0, "N/A"},
		{2198456789012, "$2.20T"},
		{526789123456, "$526.79B"},
		{34567890, "$34.57M"},
		{950000, "$950.00K"},
	}

	for _, tt := range tests {
		if got := FormatMarketCap(tt.marketCap); got != tt.want {
			t.Errorf("FormatMarketCap(%v) = %q, want %q", tt.marketCap, got, tt.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{2.71, "+2.71%"},
		{-1.5, "-1.50%"},
		{0, "+0.00%"},
		{29.74, "+29.74%"},
	}

	for _, tt := range tests {
		if got := FormatPercentage(tt.pct); got != tt.want {
			t.Errorf("FormatPercentage(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	if got := FormatVolume(1048576); got != "1,048,576" {
		t.Errorf("FormatVolume(1048576) = %q, want 1,048,576", got)
	}
}
