package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esabling477/sura-trading/cmd/sura/internal/output"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show your valued holdings",
	Long:  "Display your portfolio valued against the current quote board.",
	RunE:  runPortfolio,
}

var holdingSetCmd = &cobra.Command{
	Use:   "set <asset-id> <quantity>",
	Short: "Set the quantity of a holding",
	Long:  "Set how much of an asset you hold. A quantity of 0 removes the position.",
	Args:  cobra.ExactArgs(2),
	RunE:  runHoldingSet,
}

var holdingRemoveCmd = &cobra.Command{
	Use:   "remove <asset-id>",
	Short: "Remove a holding",
	Args:  cobra.ExactArgs(1),
	RunE:  runHoldingRemove,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.AddCommand(holdingSetCmd)
	portfolioCmd.AddCommand(holdingRemoveCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	v, err := c.Portfolio()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(v)
	}

	if len(v.Holdings) == 0 {
		output.Info("No holdings")
		return nil
	}

	output.Header("Portfolio")
	fmt.Println()

	rows := make([][]string, len(v.Holdings))
	for i, h := range v.Holdings {
		rows[i] = []string{
			h.Symbol,
			h.Name,
			h.Quantity,
			h.Price,
			h.Value,
			h.AllocationPct + "%",
		}
	}
	output.Table([]string{"Symbol", "Name", "Quantity", "Price", "Value", "Allocation"}, rows)
	fmt.Println()
	output.KeyValue([][]string{
		{"Total value", "$" + v.TotalValue},
		{"24h change", fmt.Sprintf("%s (%+.2f%%)", v.TotalChangeValue, v.TotalChangePct)},
	})
	return nil
}

func runHoldingSet(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	if err := c.SetHolding(args[0], args[1]); err != nil {
		output.Error(err.Error())
		return nil
	}

	output.Success(fmt.Sprintf("Set %s to %s", args[0], args[1]))
	return nil
}

func runHoldingRemove(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	if err := c.RemoveHolding(args[0]); err != nil {
		output.Error(err.Error())
		return nil
	}

	output.Success("Removed " + args[0])
	return nil
}
