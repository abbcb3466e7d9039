package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shipsCmd = &cobra.Command{
	Use:   "ships",
	Short: "List the agent's ships",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		ships, meta, err := client.ListShips(cmd.Context(), page, limit)
		if err != nil {
			return err
		}

		for _, ship := range ships {
			fmt.Printf("%-20s %-12s %-20s fuel %d/%d cargo %d/%d\n",
				ship.Symbol, ship.Nav.Status, ship.Nav.WaypointSymbol,
				ship.Fuel.Current, ship.Fuel.Capacity,
				ship.Cargo.Units, ship.Cargo.Capacity)
		}
		if meta != nil {
			fmt.Printf("\npage %d of %d ships\n", meta.Page, meta.Total)
		}
		return nil
	},
}

var shipDockCmd = &cobra.Command{
	Use:   "dock <ship-symbol>",
	Short: "Dock a ship at its current waypoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nav, err := client.DockShip(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s is now %s at %s\n", args[0], nav.Status, nav.WaypointSymbol)
		return nil
	},
}

var shipOrbitCmd = &cobra.Command{
	Use:   "orbit <ship-symbol>",
	Short: "Move a ship into orbit at its current waypoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		nav, err := client.OrbitShip(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s is now %s at %s\n", args[0], nav.Status, nav.WaypointSymbol)
		return nil
	},
}

func init() {
	shipsCmd.Flags().Int("page", 1, "page to fetch")
	shipsCmd.Flags().Int("limit", 20, "entries per page")
	shipsCmd.AddCommand(shipDockCmd, shipOrbitCmd)
	rootCmd.AddCommand(shipsCmd)
}
