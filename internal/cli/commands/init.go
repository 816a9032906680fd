package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clientdesk-dev/clientdesk/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a clientdesk.json configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(apiURL)
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL to write into the config")

	return cmd
}

func runInit(apiURL string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", config.ConfigFileName)
	}

	cfg := config.DefaultConfig()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Printf("✓ Created %s\n", config.ConfigFileName)
	fmt.Println("\nNext steps:")
	if apiURL == "" {
		fmt.Printf("  1. Edit %s and set api_url to your server\n", config.ConfigFileName)
		fmt.Println("  2. Run 'clientdesk register' or 'clientdesk login'")
	} else {
		fmt.Println("  1. Run 'clientdesk register' or 'clientdesk login'")
	}

	return nil
}
