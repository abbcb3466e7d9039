// Command spacetraders is a small CLI for poking at a SpaceTraders account:
// inspecting the agent, listing ships and contracts, and accepting contracts.
package main

import (
	"os"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
