package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtside-app/courtside/internal/cli/auth"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	apiClient, serverURL, err := newAuthedClient()
	if err != nil {
		// no stored token: nothing to do
		fmt.Println("Not logged in.")
		return nil
	}

	// Server-side logout is best-effort; the local token goes away regardless
	if err := apiClient.Logout(context.Background()); err != nil {
		fmt.Printf("Warning: server-side logout failed: %v\n", err)
	}

	if err := auth.DeleteToken(serverURL); err != nil {
		return fmt.Errorf("failed to remove stored token: %w", err)
	}

	fmt.Println("✓ Logged out.")
	return nil
}
