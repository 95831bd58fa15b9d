// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"os"

	"github.com/episodic-ext/episodic/core"
	"github.com/episodic-ext/episodic/host"
	"github.com/episodic-ext/episodic/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(hostCmd)
}

// hostCmd runs the background core as a native-messaging host. The browser
// shell launches this process and speaks length-prefixed JSON over stdio.
var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the background core as a native-messaging host over stdio",
	Run: func(cmd *cobra.Command, args []string) {
		log.Info("starting native-messaging host session")

		session := host.NewSession(os.Stdin, os.Stdout)
		handleErr(session.Serve(cmd.Context(), core.New(session)))
	},
}
