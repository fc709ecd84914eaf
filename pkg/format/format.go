// Package format renders prices, percentages, and market caps the way the
// dashboard displays them: en-US digit grouping with tiered fraction digits.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice formats a price for display. Pair symbols (containing "/") are
// plain numbers with 4 fraction digits; dollar amounts use tiered precision:
// 2 digits at >= 1000, 3 digits down to a cent, and 4-6 digits on sub-cent
// prices.
func FormatPrice(price float64, symbol string) string {
	switch {
	case strings.Contains(symbol, "/"):
		return printer.Sprint(number.Decimal(price,
			number.MinFractionDigits(4), number.MaxFractionDigits(4)))
	case price >= 1000:
		return "$" + printer.Sprint(number.Decimal(price,
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	case price >= 0.01:
		return "$" + printer.Sprint(number.Decimal(price,
			number.MinFractionDigits(3), number.MaxFractionDigits(3)))
	default:
		return "$" + printer.Sprint(number.Decimal(price,
			number.MinFractionDigits(4), number.MaxFractionDigits(6)))
	}
}

// FormatMarketCap abbreviates a market cap into T/B/M/K tiers. Zero or
// negative values (assets without a market cap) render as "N/A".
func FormatMarketCap(marketCap float64) string {
	switch {
	case marketCap <= 0:
		return "N/A"
	case marketCap >= 1e12:
		return fmt.Sprintf("$%.2fT", marketCap/1e12)
	case marketCap >= 1e9:
		return fmt.Sprintf("$%.2fB", marketCap/1e9)
	case marketCap >= 1e6:
		return fmt.Sprintf("$%.2fM", marketCap/1e6)
	default:
		return fmt.Sprintf("$%.2fK", marketCap/1e3)
	}
}

// FormatPercentage formats a percent change with an explicit sign.
func FormatPercentage(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// FormatVolume formats a trade volume with digit grouping.
func FormatVolume(volume int64) string {
	return printer.Sprintf("%d", volume)
}
