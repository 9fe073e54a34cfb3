// Package main is the entry point for the lvc CLI client.
package main

import (
	"github.com/donaldgifford/loss-valuation/cmd/lvc/cmd"
)

func main() {
	cmd.Execute()
}
