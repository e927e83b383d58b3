// Version command for the chronicle CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the CLI version string, overridable at build time with
// -ldflags "-X main.version=...".
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chronicle version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chronicle", version)
	},
}
