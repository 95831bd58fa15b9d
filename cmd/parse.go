// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/episodic-ext/episodic/color"
	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/icon"
	"github.com/episodic-ext/episodic/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	parseCmd.SetOut(os.Stdout)
}

// parseCmd extracts episode metadata from video URLs.
var parseCmd = &cobra.Command{
	Use:   "parse <url>...",
	Short: "Extract series, season, episode and quality metadata from video URLs",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJson := lo.Must(cmd.Flags().GetBool("json"))

		if asJson {
			parsed := lo.Map(args, func(arg string, _ int) *episode.Episode {
				return episode.Parse(arg).OrElse(nil)
			})
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(parsed))
			return
		}

		for _, arg := range args {
			e, ok := episode.Parse(arg).Get()
			if !ok {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Question), style.Faint(arg), style.Fg(color.Red)("not an episode"))
				continue
			}

			cmd.Printf("%s %s\n", icon.Get(icon.Success), style.Bold(e.Title))
			cmd.Printf("  %s %s\n", style.Faint("series"), e.SeriesName)
			if season, ok := e.Season.Get(); ok {
				cmd.Printf("  %s %d\n", style.Faint("season"), season)
			}
			cmd.Printf("  %s %d\n", style.Faint("episode"), e.Number)
			if quality, ok := e.Quality.Get(); ok {
				cmd.Printf("  %s %s\n", style.Faint("quality"), quality)
			}
		}
	},
}
