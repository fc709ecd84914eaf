package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile string
	format  string

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

var rootCmd = &cobra.Command{
	Use:   "sura",
	Short: "Sura Trading - terminal client for the trading dashboard",
	Long: titleStyle.Render(`
╔═══════════════════════════════════════════════════════════╗
║  Sura Trading CLI - crypto & forex dashboard client       ║
╚═══════════════════════════════════════════════════════════╝
`) + `
Watch simulated crypto and forex quotes, manage your portfolio,
and move funds in and out of your wallet.

Get started:
  sura auth login        Login to the terminal
  sura quotes            Show the quote board
  sura portfolio         Show your valued holdings
  sura --help            Show all commands`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sura/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, json")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".sura")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error creating config dir: ")+err.Error())
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetDefault("api_url", "http://localhost:8080")
	viper.SetDefault("format", "table")

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func getFormat() string {
	if format != "" && format != "table" {
		return format
	}
	return viper.GetString("format")
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptSecret(label string) string {
	fmt.Printf("%s: ", label)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
