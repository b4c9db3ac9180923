package main

import (
	"os"

	"github.com/joho/godotenv"

	"til-cli/internal/cli"
)

func main() {
	// Optional .env for local development (TIL_BASE_URL etc). Missing
	// file is fine.
	_ = godotenv.Load()

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
