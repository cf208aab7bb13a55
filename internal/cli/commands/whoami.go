package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtside-app/courtside/internal/api"
	"github.com/courtside-app/courtside/internal/sanitize"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}
}

func runWhoami() error {
	apiClient, serverURL, err := newAuthedClient()
	if err != nil {
		return err
	}

	session, err := apiClient.CheckSession(context.Background())
	if err != nil {
		return fmt.Errorf("session check failed: %w", err)
	}
	if !session.Authenticated || session.User == nil {
		return fmt.Errorf("not authenticated. Please run 'courtside login' first")
	}

	u := session.User
	fmt.Printf("Server:   %s\n", serverURL)
	fmt.Printf("User:     %s [%s] (%s)\n", u.Name, sanitize.Initials(u.Name), u.Email)
	fmt.Printf("Verified: %v\n", u.IsVerified)
	switch {
	case u.IsSuperAdmin:
		fmt.Println("Role:     Super Admin")
	case u.IsAdmin:
		fmt.Println("Role:     Admin")
	default:
		fmt.Println("Role:     Member")
	}
	if u.Bio != "" {
		fmt.Printf("Bio:      %s\n", u.Bio)
	}
	if expiry, err := api.TokenExpiresAt(apiClient.Token()); err == nil {
		fmt.Printf("Expires:  %s\n", expiry.Local().Format(time.RFC1123))
	}

	return nil
}
