package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List the agent's contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		contracts, _, err := client.ListContracts(cmd.Context(), 0, 0)
		if err != nil {
			return err
		}

		for _, contract := range contracts {
			state := "offered"
			switch {
			case contract.Fulfilled:
				state = "fulfilled"
			case contract.Accepted:
				state = "accepted"
			}
			fmt.Printf("%-28s %-12s %-10s deadline %s\n",
				contract.ID, contract.Type, state, contract.Terms.Deadline.Format(time.RFC3339))
		}
		return nil
	},
}

var contractAcceptCmd = &cobra.Command{
	Use:   "accept <contract-id>",
	Short: "Accept a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.AcceptContract(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Accepted %s, credits now %d\n", result.Contract.ID, result.Agent.Credits)
		return nil
	},
}

func init() {
	contractsCmd.AddCommand(contractAcceptCmd)
	rootCmd.AddCommand(contractsCmd)
}
