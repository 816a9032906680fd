package commands

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clientdesk-dev/clientdesk/internal/cli/api"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the clientdesk server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, username, email, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email address for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")

	return cmd
}

func runRegister(cmd *cobra.Command, username, email, password string) error {
	if username == "" {
		return fmt.Errorf("username is required (use --username flag)")
	}
	if email == "" {
		return fmt.Errorf("email is required (use --email flag)")
	}

	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}

		fmt.Print("Password: ")
		first, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		fmt.Print("Confirm password: ")
		second, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		if string(first) != string(second) {
			return fmt.Errorf("passwords do not match")
		}
		password = string(first)
	}

	c, err := newConsole()
	if err != nil {
		return err
	}

	creds := api.RegisterCredentials{
		Username: username,
		Email:    email,
		Password: password,
	}

	if err := c.provider.Register(cmd.Context(), creds); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Println("✓ Account created!")
	fmt.Printf("Log in with: clientdesk login --username %s\n", username)

	return nil
}
