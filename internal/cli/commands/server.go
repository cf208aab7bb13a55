package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtside-app/courtside/internal/cli/userconfig"
)

// NewServerCmd creates the server command for viewing/setting the target server
func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server [url]",
		Short: "Show or set the Courtside server URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runServerShow()
			}
			return runServerSet(args[0])
		},
	}

	return cmd
}

func runServerShow() error {
	serverURL, err := resolveServerURL()
	if err != nil {
		return err
	}
	fmt.Printf("Server: %s\n", serverURL)
	return nil
}

func runServerSet(serverURL string) error {
	cfg, err := userconfig.Load()
	if err != nil {
		return fmt.Errorf("failed to load user config: %w", err)
	}

	cfg.ServerURL = serverURL
	if err := userconfig.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("✓ Server set to %s\n", serverURL)
	return nil
}
