// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/episodic-ext/episodic/constant"
	"github.com/episodic-ext/episodic/detector"
	"github.com/episodic-ext/episodic/key"
	"github.com/episodic-ext/episodic/network"
	"github.com/episodic-ext/episodic/related"
	"github.com/episodic-ext/episodic/style"
	"github.com/episodic-ext/episodic/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("current", "c", "", "Reference video URL for episode context")
	scanCmd.Flags().StringP("direction", "d", "", "Filter links to related episodes of --current: next, previous or all")
	scanCmd.Flags().BoolP("detailed", "D", false, "Include link text, titles and nearby-text hints")
	scanCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	scanCmd.MarkFlagsRequiredTogether("current", "direction")
	scanCmd.SetOut(os.Stdout)
}

// scanCmd fetches a page over HTTP and enumerates its video links, standing in
// for the in-browser detector when no browser session is attached.
var scanCmd = &cobra.Command{
	Use:   "scan <page-url>",
	Short: "Fetch a page and enumerate its video links",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pageURL := args[0]

		d, err := fetchPage(cmd.Context(), pageURL)
		handleErr(err)

		if direction := lo.Must(cmd.Flags().GetString("direction")); direction != "" {
			dir, ok := related.ParseDirection(direction)
			if !ok {
				handleErr(fmt.Errorf("unknown direction %q", direction))
			}

			episodes := related.Find(lo.Must(cmd.Flags().GetString("current")), d.VideoLinks(), dir)
			if lo.Must(cmd.Flags().GetBool("json")) {
				printJson(cmd, episodes)
				return
			}

			cmd.Println(util.Quantify(len(episodes), "related episode", "related episodes"))
			for _, e := range episodes {
				cmd.Printf("%s\n  %s\n", e.Title, e.URL)
			}
			return
		}

		detailed := lo.Must(cmd.Flags().GetBool("detailed"))
		info := d.PageInfo(detailed)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJson(cmd, info)
			return
		}

		cmd.Printf("%s %s\n", style.Bold(info.Title), style.Faint(info.URL))
		cmd.Println(util.Quantify(len(info.Links), "video link", "video links"))

		if detailed {
			for _, link := range info.Detailed {
				cmd.Printf("%s\n  %s\n", style.Bold(link.Filename), link.URL)
				if link.Text != "" {
					cmd.Printf("  %s\n", style.Faint(link.Text))
				}
			}
			return
		}

		for _, link := range info.Links {
			cmd.Println(link)
		}
	},
}

// fetchPage downloads a page within the configured timeout and wraps it in a detector.
func fetchPage(ctx context.Context, pageURL string) (*detector.Detector, error) {
	timeout := time.Duration(viper.GetInt(key.ScanFetchTimeoutSec)) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return detector.FromHTML(pageURL, string(body))
}

func printJson(cmd *cobra.Command, v any) {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	lo.Must0(encoder.Encode(v))
}
