package commands

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func newClientDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <client-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a client record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClientDelete(cmd, args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runClientDelete(cmd *cobra.Command, id string, yes bool) error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	// Fetch first so the prompt can name the client, and so a bad ID fails
	// before the prompt
	record, err := c.records.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	if !yes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete client %s %s (%s)", record.FirstName, record.LastName, record.Identification),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := c.records.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Println("✓ Client deleted")

	return nil
}
