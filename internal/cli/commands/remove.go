package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command
func NewRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Delete a member account (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(args[0], yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runRemove(userID string, yes bool) error {
	if !yes {
		fmt.Printf("Delete user %s? This cannot be undone. [y/N]: ", userID)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	apiClient, _, err := newAuthedClient()
	if err != nil {
		return err
	}

	if err := apiClient.DeleteUser(context.Background(), userID); err != nil {
		return err
	}

	fmt.Printf("✓ Deleted user %s\n", userID)
	return nil
}
