// Init command: creates the database and seeds default reference data.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the campaign database and seed default races and classes",
	Long: `Init creates the chronicle database under the data directory, seeds the
default races, classes, and event types, and stamps the campaign id.
Running init on an existing campaign is harmless.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := tr.Store().CharacterCount()
	if err != nil {
		return fmt.Errorf("count characters: %w", err)
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	fmt.Printf("Campaign ready at %s (%d characters)\n", dataDir, count)
	return nil
}
