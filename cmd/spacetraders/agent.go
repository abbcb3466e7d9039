package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Show the authenticated agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		agent, err := client.GetAgent(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Symbol:       %s\n", agent.Symbol)
		fmt.Printf("Headquarters: %s\n", agent.Headquarters)
		fmt.Printf("Credits:      %d\n", agent.Credits)
		fmt.Printf("Faction:      %s\n", agent.StartingFaction)
		fmt.Printf("Ships:        %d\n", agent.ShipCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
}
