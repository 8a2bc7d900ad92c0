// Package main is the entry point for the retail-etl CLI.
package main

import (
	"os"

	"retail-etl/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
