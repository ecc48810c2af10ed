package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/MikeDesj/FinanceX/internal/cli"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
