// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"fmt"
	"os"

	"github.com/episodic-ext/episodic/color"
	"github.com/episodic-ext/episodic/episode"
	"github.com/episodic-ext/episodic/history"
	"github.com/episodic-ext/episodic/icon"
	"github.com/episodic-ext/episodic/key"
	"github.com/episodic-ext/episodic/series"
	"github.com/episodic-ext/episodic/style"
	"github.com/episodic-ext/episodic/suggest"
	"github.com/episodic-ext/episodic/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists the watch history grouped into series.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the watch history grouped into series",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		grouped := series.Group(saved)
		if len(grouped) == 0 {
			cmd.Println("Watch history is empty")
			return
		}

		for i, s := range grouped {
			cmd.Printf("%s %s\n",
				style.New().Bold(true).Foreground(color.HiPurple).Render(s.Name),
				style.Faint(fmt.Sprintf("%d/%s watched", s.Watched(), util.Quantify(len(s.Episodes), "episode", "episodes"))),
			)
			for _, v := range s.Episodes {
				marker := icon.Get(icon.Progress)
				if v.Completed() {
					marker = icon.Get(icon.Success)
				}
				cmd.Printf("  %s %s\n", marker, v)
			}

			if i < len(grouped)-1 {
				cmd.Println()
			}
		}
	},
}

func init() {
	historyCmd.AddCommand(historySaveCmd)
	historySaveCmd.Flags().Float64P("percentage", "p", 100, "Watched percentage to record")
	historySaveCmd.SetOut(os.Stdout)
}

// historySaveCmd records playback progress for a video URL.
var historySaveCmd = &cobra.Command{
	Use:   "save <video-url>",
	Short: "Record playback progress for a video URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !viper.GetBool(key.HistorySaveOnWatch) {
			cmd.Println("History writing is disabled")
			return
		}

		e, ok := episode.Parse(args[0]).Get()
		if !ok {
			handleErr(fmt.Errorf("%s is not an episode", args[0]))
		}

		handleErr(history.Save(e, lo.Must(cmd.Flags().GetFloat64("percentage"))))
		suggest.Invalidate()

		cmd.Printf("%s saved %s\n", icon.Get(icon.Success), style.Bold(e.Title))
	},
}

func init() {
	historyCmd.AddCommand(historySuggestCmd)
	historySuggestCmd.SetOut(os.Stdout)
}

// historySuggestCmd completes a partial series name against the watch history.
var historySuggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Suggest watched series names matching a partial input",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		suggestions := suggest.SuggestMany(args[0])
		if len(suggestions) == 0 {
			cmd.Println("No suggestions")
			return
		}

		for _, name := range suggestions {
			cmd.Println(name)
		}
	},
}
