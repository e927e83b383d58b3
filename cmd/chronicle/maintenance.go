// Destructive maintenance commands: reset and purge.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all characters and events, keeping races and classes",
	Long: `Reset clears every character, event, detail, and association. Races,
classes, and event types survive. The current selection is cleared.`,
	RunE: runReset,
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop every table; the next command rebuilds and reseeds",
	Long: `Purge drops the entire schema, including races and classes, and marks
the campaign uninitialized. The next command recreates the tables and
reseeds the defaults under a new campaign id.`,
	RunE: runPurge,
}

func init() {
	resetCmd.Flags().BoolVar(&flagForce, "force", false, "skip the confirmation prompt")
	purgeCmd.Flags().BoolVar(&flagForce, "force", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !confirm("This deletes all characters and events. Continue? [y/N] ") {
		fmt.Println("Aborted.")
		return nil
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Println("Character data cleared.")
	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	if !confirm("This drops every table, including races and classes. Continue? [y/N] ") {
		fmt.Println("Aborted.")
		return nil
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.Purge(); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	fmt.Println("Database purged.")
	return nil
}

// confirm prompts on stdin unless --force was given.
func confirm(prompt string) bool {
	if flagForce {
		return true
	}
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
