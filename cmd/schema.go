// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"os"

	"github.com/episodic-ext/episodic/protocol"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd prints the JSON Schema of every protocol message, for shell
// implementors validating traffic at the transport boundary.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the messaging protocol",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(string(protocol.Schema()))
	},
}
