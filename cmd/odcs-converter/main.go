// Command odcs-converter converts ODCS data contracts between JSON, YAML and
// Excel workbooks, from the command line or as an HTTP service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/thiruselvaa/odcs-converter/internal/converter"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	if err := rootCmd().Execute(); err != nil {
		if msg := converter.FormatUserError(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
