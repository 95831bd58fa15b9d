// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/episodic-ext/episodic/color"
	"github.com/episodic-ext/episodic/constant"
	"github.com/episodic-ext/episodic/style"
	"github.com/episodic-ext/episodic/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and platform metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		versionInfo := struct {
			Version string
			OS      string
			Arch    string
			App     string
		}{
			Version: constant.Version,
			App:     constant.Episodic,
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(color.Purple),
			"repeat":  strings.Repeat,
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}   {{ bold .Version }}
  {{ faint "Platform" }}  {{ bold .OS }}/{{ bold .Arch }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}
