// Package main is the entry point for the loss-valuation service.
package main

import (
	"os"

	"github.com/donaldgifford/loss-valuation/cmd/loss-valuation/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
