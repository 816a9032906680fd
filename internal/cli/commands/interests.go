package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewInterestsCmd creates the interests command
func NewInterestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interests",
		Short: "List the interest catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterests(cmd)
		},
	}

	return cmd
}

func runInterests(cmd *cobra.Command) error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	interests, err := c.records.Interests(cmd.Context())
	if err != nil {
		return err
	}

	if len(interests) == 0 {
		fmt.Println("No interests found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	fmt.Fprintln(w, "──\t────")

	for _, interest := range interests {
		fmt.Fprintf(w, "%s\t%s\n", interest.ID, interest.Name)
	}

	w.Flush()

	return nil
}
