// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/episodic-ext/episodic/related"
	"github.com/episodic-ext/episodic/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(relatedCmd)
	relatedCmd.Flags().StringP("direction", "d", string(related.All), "Which neighbors to keep: next, previous or all")
	relatedCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	lo.Must0(relatedCmd.RegisterFlagCompletionFunc("direction", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(related.Next), string(related.Previous), string(related.All)}, cobra.ShellCompDirectiveNoFileComp
	}))
	relatedCmd.SetOut(os.Stdout)
}

// relatedCmd finds same-series episodes among candidate URLs.
var relatedCmd = &cobra.Command{
	Use:   "related <current-url> <candidate-url>...",
	Short: "Find episodes of the same series among candidate URLs",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		direction, ok := related.ParseDirection(lo.Must(cmd.Flags().GetString("direction")))
		if !ok {
			handleErr(fmt.Errorf("unknown direction %q", lo.Must(cmd.Flags().GetString("direction"))))
		}

		episodes := related.Find(args[0], args[1:], direction)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(episodes))
			return
		}

		cmd.Println(util.Quantify(len(episodes), "related episode", "related episodes"))
		for _, e := range episodes {
			cmd.Printf("%s\n  %s\n", e.Title, e.URL)
		}
	},
}
