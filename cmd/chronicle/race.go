// Race commands: add, list, delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Manage the race reference list",
}

var raceAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a race",
	Long: `Add inserts a race by unique name. Adding a name that already exists is
a no-op, not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runRaceAdd,
}

var raceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List races ordered by name",
	RunE:  runRaceList,
}

var raceDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a race unless a character references it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRaceDelete,
}

func init() {
	raceCmd.AddCommand(raceAddCmd)
	raceCmd.AddCommand(raceListCmd)
	raceCmd.AddCommand(raceDeleteCmd)
}

func runRaceAdd(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	id, inserted, err := tr.AddRace(args[0])
	if err != nil {
		return fmt.Errorf("add race: %w", err)
	}
	if !inserted {
		fmt.Printf("Race %q already exists\n", args[0])
		return nil
	}
	fmt.Printf("Added race %q (id %d)\n", args[0], id)
	return nil
}

func runRaceList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	races, err := tr.Store().Races()
	if err != nil {
		return fmt.Errorf("list races: %w", err)
	}
	return printEntries(races)
}

func runRaceDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid race id %q", args[0])
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := tr.DeleteRace(id)
	if err != nil {
		return fmt.Errorf("delete race: %w", err)
	}
	if !deleted {
		fmt.Printf("Race %d not deleted: a character references it (or it does not exist)\n", id)
		return nil
	}
	fmt.Printf("Deleted race %d\n", id)
	return nil
}
