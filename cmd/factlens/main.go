package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/factlens/factlens/internal/cli"
)

func main() {
	// Optional; real deployments set env vars directly.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
