// Package cmd implements the command-line interface for episodic.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/episodic-ext/episodic/color"
	"github.com/episodic-ext/episodic/config"
	"github.com/episodic-ext/episodic/constant"
	"github.com/episodic-ext/episodic/filesystem"
	"github.com/episodic-ext/episodic/icon"
	"github.com/episodic-ext/episodic/style"
	"github.com/episodic-ext/episodic/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
	msg := fmt.Sprintf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)

	return errors.New(msg)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func configFilePath() string {
	return filepath.Join(where.Config(), fmt.Sprintf("%s.toml", constant.Episodic))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing application configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration settings and defaults",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd displays metadata and descriptions for configuration fields.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display detailed information and descriptions for specified configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			fields = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = make([]config.Field, 0, len(keys))

			for _, key := range keys {
				if _, ok := config.Default[key]; !ok {
					handleErr(errUnknownKey(key))
				}

				fields = append(fields, config.Default[key])
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(fields))
			return
		}

		for i, field := range fields {
			fmt.Print(field.Pretty())

			if i < len(fields)-1 {
				fmt.Println()
				fmt.Println()
			}
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

// configSetCmd updates the value of a specific configuration key.
var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>",
	Short:             "Update the value of a specified configuration key",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]

		if _, ok := config.Default[key]; !ok {
			handleErr(errUnknownKey(key))
		}

		var v any
		switch config.Default[key].Value.(type) {
		case string:
			v = value
		case int:
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				handleErr(fmt.Errorf("invalid integer value: %s", value))
			}
			v = int(parsed)
		case float64:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				handleErr(fmt.Errorf("invalid float value: %s", value))
			}
			v = parsed
		case bool:
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				handleErr(fmt.Errorf("invalid boolean value: %s", value))
			}
			v = parsed
		}

		viper.Set(key, v)
		switch err := viper.WriteConfig(); err.(type) {
		case viper.ConfigFileNotFoundError:
			handleErr(viper.SafeWriteConfig())
		default:
			handleErr(err)
		}

		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(key),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

// configGetCmd retrieves the current value of a configuration key.
var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Retrieve the current value of a specified configuration key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		if _, ok := config.Default[key]; !ok {
			handleErr(errUnknownKey(key))
		}

		fmt.Println(viper.Get(key))
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the configuration file from the localized storage.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Permanently remove the localized configuration file from the system",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFilePath()))
		fmt.Printf(
			"%s deleted config\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore to its default value")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore all configuration settings to their factory defaults")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores configuration keys to their factory default values.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore a specified configuration key to its default value",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			handleErr(fmt.Errorf("either --key or --all must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			key = lo.Must(cmd.Flags().GetString("key"))
			all = lo.Must(cmd.Flags().GetBool("all"))
		)

		if all {
			for key, field := range config.Default {
				viper.Set(key, field.Value)
			}
		} else if _, ok := config.Default[key]; !ok {
			handleErr(errUnknownKey(key))
		} else {
			viper.Set(key, config.Default[key].Value)
		}

		switch err := viper.WriteConfig(); err.(type) {
		case viper.ConfigFileNotFoundError:
			handleErr(viper.SafeWriteConfig())
		default:
			handleErr(err)
		}

		if all {
			fmt.Printf(
				"%s reset all config values\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
			)
		} else {
			fmt.Printf(
				"%s reset %s to default value %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Purple)(key),
				style.Fg(color.Yellow)(fmt.Sprintf("%v", config.Default[key].Value)),
			)
		}
	},
}
