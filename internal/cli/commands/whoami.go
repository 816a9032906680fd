package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}

	return cmd
}

func runWhoami() error {
	c, err := newConsole()
	if err != nil {
		return err
	}

	sess := c.provider.Current()
	if !sess.Authenticated {
		fmt.Println("Not logged in.")
		fmt.Println("\nLog in with: clientdesk login --username <name>")
		return nil
	}

	fmt.Printf("Logged in as %s (%s)\n", sess.User.Username, sess.User.UserID)
	fmt.Printf("  Server: %s\n", c.apiURL)

	return nil
}
