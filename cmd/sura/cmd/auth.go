package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/esabling477/sura-trading/cmd/sura/internal/auth"
	"github.com/esabling477/sura-trading/cmd/sura/internal/client"
	"github.com/esabling477/sura-trading/cmd/sura/internal/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your terminal session - login, logout, status.",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the terminal",
	Long:  "Login with your email. Any email works; the terminal simulates credentials.",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and clear stored credentials",
	RunE:  runLogout,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE:  runStatus,
}

var emailFlag string

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().StringVarP(&emailFlag, "email", "e", "", "email address")
}

func requireAuth() (*client.Client, error) {
	if !auth.IsLoggedIn() {
		output.Error("Not logged in. Run 'sura auth login' first.")
		return nil, fmt.Errorf("not authenticated")
	}

	c := client.New()
	c.SetToken(auth.GetToken())
	return c, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := emailFlag
	if email == "" {
		email = prompt("Email")
	}
	password := promptSecret("Password")

	c := client.New()
	output.Info("Logging in...")

	session, err := c.Login(email, password)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	expiresAt := time.Now().Add(time.Duration(session.Tokens.ExpiresIn) * time.Second)
	if err := auth.Save(&auth.StoredAuth{
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
		ExpiresAt:    expiresAt,
		Email:        session.User.Email,
		UserID:       session.User.ID,
		Name:         session.User.Name,
	}); err != nil {
		output.Error("Could not save credentials: " + err.Error())
	}

	output.Success("Logged in as " + session.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if refresh := auth.GetRefreshToken(); refresh != "" {
		c := client.New()
		if err := c.Logout(refresh); err != nil {
			output.Info("Server-side logout failed: " + err.Error())
		}
	}

	if err := auth.Clear(); err != nil {
		output.Error(err.Error())
		return nil
	}
	output.Success("Logged out")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	stored, err := auth.Load()
	if err != nil || stored == nil || stored.AccessToken == "" {
		output.Info("Not logged in")
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(stored)
	}

	output.Header("Session")
	fmt.Println()
	output.KeyValue([][]string{
		{"Email", stored.Email},
		{"Name", stored.Name},
		{"User ID", stored.UserID},
		{"Expires", stored.ExpiresAt.Format(time.RFC822)},
	})
	return nil
}
