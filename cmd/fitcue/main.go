// Package main is the entry point for the fitcue CLI.
package main

import (
	"os"

	"github.com/runger/fitcue/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
