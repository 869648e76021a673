package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/waql-tui/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "url\t%s\n", stored.WAAPIURL)
		fmt.Fprintf(tw, "timeout\t%d\n", stored.TimeoutSeconds)
		fmt.Fprintf(tw, "history\t%d\n", stored.MaxHistoryEntries)
		fmt.Fprintf(tw, "vim\t%t\n", stored.VimMode)
		return tw.Flush()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <url|timeout|history|vim> <value>",
	Short: "Store one configuration value",
	Example: `  waql-tui config set url http://127.0.0.1:8090/waapi
  waql-tui config set vim true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := setConfigValue(&stored, args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveConfig(stored); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", strings.ToLower(args[0]), args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}

// setConfigValue parses value into the field named by key
func setConfigValue(c *config.Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "url":
		if value == "" {
			return fmt.Errorf("url must not be empty")
		}
		c.WAAPIURL = value
	case "timeout", "history":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		if strings.EqualFold(key, "timeout") {
			c.TimeoutSeconds = n
		} else {
			c.MaxHistoryEntries = n
		}
	case "vim":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("vim must be true or false, got %q", value)
		}
		c.VimMode = b
	default:
		return fmt.Errorf("unknown config key %q (url, timeout, history, vim)", key)
	}
	return nil
}
