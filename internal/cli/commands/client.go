package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewClientCmd creates the client command group
func NewClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage client records",
	}

	cmd.AddCommand(newClientListCmd())
	cmd.AddCommand(newClientGetCmd())
	cmd.AddCommand(newClientCreateCmd())
	cmd.AddCommand(newClientUpdateCmd())
	cmd.AddCommand(newClientDeleteCmd())

	return cmd
}

func newClientListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls [search-term]",
		Aliases: []string{"list", "search"},
		Short:   "List clients, optionally filtered by name or identification",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return runClientList(cmd, term)
		},
	}

	return cmd
}

func runClientList(cmd *cobra.Command, term string) error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	clients, err := c.records.Search(cmd.Context(), term)
	if err != nil {
		return err
	}

	if len(clients) == 0 {
		if term != "" {
			fmt.Printf("No clients match %q.\n", term)
		} else {
			fmt.Println("No clients found.")
			fmt.Println("\nCreate one with: clientdesk client create")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tIDENTIFICATION\tNAME")
	fmt.Fprintln(w, "──\t──────────────\t────")

	for _, client := range clients {
		fmt.Fprintf(w, "%s\t%s\t%s %s\n",
			client.ID,
			client.Identification,
			client.FirstName,
			client.LastName,
		)
	}

	w.Flush()

	return nil
}

func newClientGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <client-id>",
		Short: "Show a client record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClientGet(cmd, args[0])
		},
	}

	return cmd
}

func runClientGet(cmd *cobra.Command, id string) error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	record, err := c.records.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", record.ID)
	fmt.Fprintf(w, "Name:\t%s %s\n", record.FirstName, record.LastName)
	fmt.Fprintf(w, "Identification:\t%s\n", record.Identification)
	fmt.Fprintf(w, "Gender:\t%s\n", record.Gender)
	fmt.Fprintf(w, "Cellphone:\t%s\n", record.Cellphone)
	fmt.Fprintf(w, "Other phone:\t%s\n", record.OtherPhone)
	fmt.Fprintf(w, "Address:\t%s\n", record.Address)
	if !record.BirthDate.IsZero() {
		fmt.Fprintf(w, "Birth date:\t%s\n", record.BirthDate.Format(dateLayout))
	}
	if !record.AffiliationDate.IsZero() {
		fmt.Fprintf(w, "Affiliated since:\t%s\n", record.AffiliationDate.Format(dateLayout))
	}
	fmt.Fprintf(w, "Interest:\t%s\n", record.InterestID)
	if record.PersonalNote != "" {
		fmt.Fprintf(w, "Note:\t%s\n", record.PersonalNote)
	}
	w.Flush()

	return nil
}
