package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clientdesk-dev/clientdesk/internal/cli/api"
)

const dateLayout = "2006-01-02"

// clientFlags collects the record fields shared by create and update
type clientFlags struct {
	firstName       string
	lastName        string
	identification  string
	cellphone       string
	otherPhone      string
	address         string
	birthDate       string
	affiliationDate string
	gender          string
	note            string
	interestID      string
}

func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&f.identification, "identification", "", "Identification document number")
	cmd.Flags().StringVar(&f.cellphone, "cellphone", "", "Cellphone number")
	cmd.Flags().StringVar(&f.otherPhone, "other-phone", "", "Alternative phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "Street address")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.affiliationDate, "affiliation-date", "", "Affiliation date (YYYY-MM-DD, defaults to today on create)")
	cmd.Flags().StringVar(&f.gender, "gender", "", "Gender (F or M)")
	cmd.Flags().StringVar(&f.note, "note", "", "Personal note")
	cmd.Flags().StringVar(&f.interestID, "interest", "", "Interest ID (see 'clientdesk interests')")
}

func parseDate(value, flag string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", flag, value)
	}
	return date, nil
}

func newClientCreateCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClientCreate(cmd, &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runClientCreate(cmd *cobra.Command, flags *clientFlags) error {
	if flags.firstName == "" || flags.lastName == "" {
		return fmt.Errorf("--first-name and --last-name are required")
	}
	if flags.identification == "" {
		return fmt.Errorf("--identification is required")
	}
	if flags.gender != "F" && flags.gender != "M" {
		return fmt.Errorf("--gender must be F or M")
	}

	record := api.ClientRecord{
		FirstName:      flags.firstName,
		LastName:       flags.lastName,
		Identification: flags.identification,
		Cellphone:      flags.cellphone,
		OtherPhone:     flags.otherPhone,
		Address:        flags.address,
		Gender:         flags.gender,
		PersonalNote:   flags.note,
		InterestID:     flags.interestID,
	}

	var err error
	if flags.birthDate != "" {
		if record.BirthDate, err = parseDate(flags.birthDate, "birth-date"); err != nil {
			return err
		}
	}
	if flags.affiliationDate != "" {
		if record.AffiliationDate, err = parseDate(flags.affiliationDate, "affiliation-date"); err != nil {
			return err
		}
	} else {
		record.AffiliationDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	c, err := newConsole()
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	created, err := c.records.Create(cmd.Context(), record)
	if err != nil {
		return err
	}

	fmt.Println("✓ Client created!")
	fmt.Printf("  ID: %s\n", created.ID)
	fmt.Printf("  Name: %s %s\n", created.FirstName, created.LastName)

	return nil
}

func newClientUpdateCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "update <client-id>",
		Short: "Update a client record (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClientUpdate(cmd, args[0], &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

func runClientUpdate(cmd *cobra.Command, id string, flags *clientFlags) error {
	c, err := newConsole()
	if err != nil {
		return err
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	// Fetch the current record, overlay changed flags, send it back whole;
	// the API replaces records rather than patching them
	record, err := c.records.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("first-name") {
		record.FirstName = flags.firstName
	}
	if changed("last-name") {
		record.LastName = flags.lastName
	}
	if changed("identification") {
		record.Identification = flags.identification
	}
	if changed("cellphone") {
		record.Cellphone = flags.cellphone
	}
	if changed("other-phone") {
		record.OtherPhone = flags.otherPhone
	}
	if changed("address") {
		record.Address = flags.address
	}
	if changed("birth-date") {
		if record.BirthDate, err = parseDate(flags.birthDate, "birth-date"); err != nil {
			return err
		}
	}
	if changed("affiliation-date") {
		if record.AffiliationDate, err = parseDate(flags.affiliationDate, "affiliation-date"); err != nil {
			return err
		}
	}
	if changed("gender") {
		if flags.gender != "F" && flags.gender != "M" {
			return fmt.Errorf("--gender must be F or M")
		}
		record.Gender = flags.gender
	}
	if changed("note") {
		record.PersonalNote = flags.note
	}
	if changed("interest") {
		record.InterestID = flags.interestID
	}

	updated, err := c.records.Update(cmd.Context(), *record)
	if err != nil {
		return err
	}

	fmt.Println("✓ Client updated!")
	fmt.Printf("  Name: %s %s\n", updated.FirstName, updated.LastName)

	return nil
}
