// Command web runs the payroll wage dashboard server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"wagelens/internal/app"
	"wagelens/web"
)

func main() {
	// Optional .env for local development; system env always wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	application, err := app.New(web.Assets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
