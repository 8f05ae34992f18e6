// Package main is the entry point for the keychainctl CLI tool.
package main

import (
	"os"

	"github.com/binbandit/keychainctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
