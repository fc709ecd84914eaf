package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/esabling477/sura-trading/cmd/sura/internal/output"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet commands",
	Long:  "Check your balance, deposit, withdraw, and view transfer history.",
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show wallet balance",
	RunE:  runBalance,
}

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Deposit into your wallet",
	Long:  "Credit your wallet. Settlement is simulated and instant.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeposit,
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Withdraw from your wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithdraw,
}

var transfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "View transfer history",
	RunE:  runTransfers,
}

var (
	networkFlag string
	addressFlag string
	pageFlag    int
	limitFlag   int
)

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(balanceCmd)
	walletCmd.AddCommand(depositCmd)
	walletCmd.AddCommand(withdrawCmd)
	walletCmd.AddCommand(transfersCmd)

	depositCmd.Flags().StringVarP(&networkFlag, "network", "n", "", "network the funds arrive from")
	withdrawCmd.Flags().StringVarP(&addressFlag, "address", "a", "", "destination address")

	transfersCmd.Flags().IntVar(&pageFlag, "page", 1, "page number")
	transfersCmd.Flags().IntVar(&limitFlag, "limit", 10, "items per page")
}

func runBalance(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	wallet, err := c.Wallet()
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(wallet)
	}

	output.Header("Wallet")
	fmt.Println()
	output.KeyValue([][]string{
		{"Balance", "$" + wallet.Balance},
		{"Updated", wallet.UpdatedAt.Format(time.RFC822)},
	})
	return nil
}

func runDeposit(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	network := networkFlag
	if network == "" {
		network = prompt("Network (e.g. Bitcoin, Ethereum)")
	}

	tr, err := c.Deposit(network, args[0])
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(tr)
	}

	output.Success("Deposit completed")
	fmt.Println()
	output.KeyValue([][]string{
		{"Transfer ID", tr.ID},
		{"Amount", "$" + tr.Amount},
		{"Network", tr.Network},
		{"Status", tr.Status},
	})
	return nil
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	address := addressFlag
	if address == "" {
		address = prompt("Destination address")
	}

	tr, err := c.Withdraw(address, args[0])
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(tr)
	}

	output.Success("Withdrawal completed")
	fmt.Println()
	output.KeyValue([][]string{
		{"Transfer ID", tr.ID},
		{"Amount", "$" + tr.Amount},
		{"Address", tr.Address},
		{"Status", tr.Status},
	})
	return nil
}

func runTransfers(cmd *cobra.Command, args []string) error {
	c, err := requireAuth()
	if err != nil {
		return nil
	}

	page, err := c.Transfers(pageFlag, limitFlag)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(page)
	}

	if len(page.Items) == 0 {
		output.Info("No transfers found")
		return nil
	}

	output.Header("Transfer History")
	fmt.Println()

	rows := make([][]string, len(page.Items))
	for i, tr := range page.Items {
		target := tr.Network
		if target == "" {
			target = tr.Address
		}
		rows[i] = []string{
			tr.ID[:8],
			tr.Kind,
			"$" + tr.Amount,
			target,
			tr.Status,
			tr.CreatedAt.Format("2006-01-02"),
		}
	}
	output.Table([]string{"ID", "Kind", "Amount", "Via", "Status", "Date"}, rows)
	fmt.Println()
	output.Info(fmt.Sprintf("Page %d of %d", page.Pagination.Page, page.Pagination.TotalPages))
	return nil
}
