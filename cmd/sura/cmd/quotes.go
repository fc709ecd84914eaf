package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/esabling477/sura-trading/cmd/sura/internal/client"
	"github.com/esabling477/sura-trading/cmd/sura/internal/output"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes [symbol]",
	Short: "Show the quote board or one quote",
	Long:  "List all simulated quotes, or show a single symbol (e.g. 'sura quotes BTC').",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuotes,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Request a quote refresh",
	Long:  "Ask the terminal to run a simulated refresh pass after its upstream delay.",
	RunE:  runRefresh,
}

var chartCmd = &cobra.Command{
	Use:   "chart <symbol>",
	Short: "Download a chart PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

var (
	daysFlag   int
	kindFlag   string
	themeFlag  string
	outputFlag string
)

func init() {
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().IntVarP(&daysFlag, "days", "d", 30, "series length in days")
	chartCmd.Flags().StringVarP(&kindFlag, "kind", "k", "candlestick", "chart kind: candlestick, line")
	chartCmd.Flags().StringVarP(&themeFlag, "theme", "t", "dark", "theme: dark, light")
	chartCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file (default <symbol>.png)")
}

func runQuotes(cmd *cobra.Command, args []string) error {
	c := client.New()

	if len(args) == 1 {
		quote, err := c.Quote(args[0])
		if err != nil {
			output.Error(err.Error())
			return nil
		}

		if getFormat() == "json" {
			return output.JSON(quote)
		}

		output.Header(quote.Name)
		fmt.Println()
		output.KeyValue([][]string{
			{"Symbol", quote.Symbol},
			{"Price", quote.PriceDisplay},
			{"24h Change", output.Change(quote.ChangeDisplay)},
			{"Market Cap", quote.MarketCapDisplay},
		})
		return nil
	}

	board, err := c.Quotes()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(board)
	}

	output.Header("Quote Board")
	fmt.Println()

	rows := make([][]string, len(board.Quotes))
	for i, q := range board.Quotes {
		rows[i] = []string{
			q.Symbol,
			q.Name,
			q.PriceDisplay,
			output.Change(q.ChangeDisplay),
			q.MarketCapDisplay,
		}
	}
	output.Table([]string{"Symbol", "Name", "Price", "24h", "Market Cap"}, rows)
	fmt.Println()
	output.Info("Last updated " + board.LastUpdated.Format(time.RFC822))
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	c := client.New()

	ms, err := c.RequestRefresh()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	output.Success(fmt.Sprintf("Refresh scheduled, landing in %dms", ms))
	return nil
}

func runChart(cmd *cobra.Command, args []string) error {
	c := client.New()
	symbol := args[0]

	img, err := c.Chart(symbol, daysFlag, kindFlag, themeFlag)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	path := outputFlag
	if path == "" {
		// Pair symbols contain a slash
		path = strings.ReplaceAll(symbol, "/", "-") + ".png"
	}

	if err := os.WriteFile(path, img, 0644); err != nil {
		output.Error(err.Error())
		return nil
	}

	output.Success(fmt.Sprintf("Saved %s chart to %s (%d bytes)", symbol, path, len(img)))
	return nil
}
