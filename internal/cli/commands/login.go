package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clientdesk-dev/clientdesk/internal/cli/api"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the clientdesk server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, username, password, remember)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set CLIENTDESK_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set CLIENTDESK_PASSWORD, will prompt if not provided)")
	cmd.Flags().BoolVar(&remember, "remember", false, "Keep the session in the OS keychain across reboots")

	return cmd
}

func runLogin(cmd *cobra.Command, username, password string, remember bool) error {
	// Check for environment variables (useful for CI/CD)
	if username == "" {
		username = os.Getenv("CLIENTDESK_USERNAME")
	}
	if password == "" {
		password = os.Getenv("CLIENTDESK_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or CLIENTDESK_USERNAME env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or CLIENTDESK_PASSWORD env var)")
		}
	}

	c, err := newConsole()
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s...\n", c.apiURL)

	creds := api.LoginCredentials{
		Username: username,
		Password: password,
	}

	sess, err := c.provider.Login(cmd.Context(), creds, remember)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", sess.User.Username, sess.User.UserID)
	if remember {
		fmt.Println("  Session saved to the OS keychain")
	} else {
		fmt.Println("  Session lasts until reboot (use --remember to keep it)")
	}

	return nil
}
