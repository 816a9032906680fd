package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}

	return cmd
}

func runLogout() error {
	c, err := newConsole()
	if err != nil {
		return err
	}

	// Clears storage either way; logging out while logged out is a no-op
	c.provider.Logout()

	fmt.Println("✓ Logged out")
	return nil
}
