package main

import (
	"os"

	"github.com/clientdesk-dev/clientdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
