package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/courtside-app/courtside/internal/cli/auth"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Courtside server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set COURTSIDE_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set COURTSIDE_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("COURTSIDE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("COURTSIDE_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or COURTSIDE_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or COURTSIDE_PASSWORD env var)")
		}
	}

	apiClient, serverURL, err := newClient()
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s...\n", serverURL)

	loginResp, err := apiClient.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Save token
	if err := auth.SaveToken(serverURL, loginResp.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", loginResp.User.Name, loginResp.User.Email)
	switch {
	case loginResp.User.IsSuperAdmin:
		fmt.Println("  Role: Super Admin")
	case loginResp.User.IsAdmin:
		fmt.Println("  Role: Admin")
	}
	if !loginResp.User.IsVerified {
		fmt.Println("  Note: account is not verified yet; most pages are locked until verification")
	}

	return nil
}
