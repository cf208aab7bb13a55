package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPromoteCmd creates the promote command
func NewPromoteCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "promote <user-id>",
		Short: "Grant a role to a member (super-admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoleChange(args[0], role, true)
		},
	}

	cmd.Flags().StringVar(&role, "role", "admin", "Role to grant: admin or super_admin")

	return cmd
}

// NewDemoteCmd creates the demote command
func NewDemoteCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "demote <user-id>",
		Short: "Revoke a role from a member (super-admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoleChange(args[0], role, false)
		},
	}

	cmd.Flags().StringVar(&role, "role", "admin", "Role to revoke: admin or super_admin")

	return cmd
}

func runRoleChange(userID, role string, grant bool) error {
	if role != "admin" && role != "super_admin" {
		return fmt.Errorf("invalid role %q: must be admin or super_admin", role)
	}

	apiClient, _, err := newAuthedClient()
	if err != nil {
		return err
	}

	if grant {
		if err := apiClient.GrantRole(context.Background(), userID, role); err != nil {
			return err
		}
		fmt.Printf("✓ Granted %s to user %s\n", role, userID)
		return nil
	}

	if err := apiClient.RevokeRole(context.Background(), userID, role); err != nil {
		return err
	}
	fmt.Printf("✓ Revoked %s from user %s\n", role, userID)
	return nil
}
