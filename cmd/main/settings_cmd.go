package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/waql-tui/pkg/config"
	"github.com/user/waql-tui/pkg/waql"
)

var savedName string

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved queries",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(settings.SavedQueries) == 0 {
			fmt.Fprintln(out, "No saved queries")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNAME\tID\tQUERY")
		for i, sq := range settings.SavedQueries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, sq.Name, sq.ID, firstLine(sq.Query))
		}
		return tw.Flush()
	},
}

var savedShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Print a saved query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		i, ok := settings.FindSavedQuery(args[0])
		if !ok {
			return fmt.Errorf("no saved query %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), settings.SavedQueries[i].Query)
		return nil
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <waql>",
	Short: "Save a query",
	Example: `  waql-tui saved add '$ from type Sound' --name sounds
  waql-tui saved add '$ from type Bus'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *config.Settings) error {
			if !s.AddSavedQuery(savedName, args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), "Query already saved")
				return nil
			}
			sq := s.SavedQueries[len(s.SavedQueries)-1]
			if i, ok := s.FindSavedQuery(savedName); ok && savedName != "" {
				sq = s.SavedQueries[i]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s)\n", sq.Name, sq.ID)
			return nil
		})
	},
}

var savedRmCmd = &cobra.Command{
	Use:     "rm <name-or-id>",
	Aliases: []string{"remove"},
	Short:   "Delete a saved query",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *config.Settings) error {
			i, ok := s.FindSavedQuery(args[0])
			if !ok {
				return fmt.Errorf("no saved query %q", args[0])
			}
			removed, _ := s.RemoveSavedQuery(i)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", removed.Name)
			return nil
		})
	},
}

var keywordCmd = &cobra.Command{
	Use:     "keyword",
	Aliases: []string{"keywords", "kw"},
	Short:   "Manage custom completion keywords",
}

var keywordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom keywords",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(settings.CustomKeywords) == 0 {
			fmt.Fprintln(out, "No custom keywords")
			return nil
		}
		for _, kw := range settings.CustomKeywords {
			fmt.Fprintln(out, kw)
		}
		return nil
	},
}

var keywordAddCmd = &cobra.Command{
	Use:   "add <keyword>...",
	Short: "Add custom keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *config.Settings) error {
			for _, kw := range args {
				if s.AddCustomKeyword(kw) {
					fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", strings.TrimSpace(kw))
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %q: empty or already present\n", kw)
				}
			}
			return nil
		})
	},
}

var keywordRmCmd = &cobra.Command{
	Use:     "rm <keyword>",
	Aliases: []string{"remove"},
	Short:   "Remove a custom keyword by value or 1-based position",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(func(s *config.Settings) error {
			i := keywordIndex(s.CustomKeywords, args[0])
			removed, ok := s.RemoveCustomKeyword(i)
			if !ok {
				return fmt.Errorf("no custom keyword %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed)
			return nil
		})
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the editor theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range waql.ThemeNames() {
				marker := "  "
				if name == settings.ThemeName {
					marker = "* "
				}
				fmt.Fprintln(out, marker+name)
			}
			return nil
		}

		theme, ok := waql.LookupTheme(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", args[0], strings.Join(waql.ThemeNames(), ", "))
		}
		return updateSettings(func(s *config.Settings) error {
			s.SetTheme(theme.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme.Name)
			return nil
		})
	},
}

func init() {
	savedAddCmd.Flags().StringVarP(&savedName, "name", "n", "", "name for the query (derived from the text when empty)")

	savedCmd.AddCommand(savedListCmd, savedShowCmd, savedAddCmd, savedRmCmd)
	keywordCmd.AddCommand(keywordListCmd, keywordAddCmd, keywordRmCmd)
}

// loadSettings refuses to continue on a malformed settings file so a later
// save cannot overwrite it with defaults
func loadSettings() (config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// updateSettings loads, mutates and saves the settings document
func updateSettings(fn func(*config.Settings) error) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := fn(&settings); err != nil {
		return err
	}
	if err := config.SaveSettings(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		return err
	}
	return nil
}

// keywordIndex matches a keyword by value first, then by 1-based position
func keywordIndex(keywords []string, arg string) int {
	for i, kw := range keywords {
		if kw == arg {
			return i
		}
	}
	if n, err := strconv.Atoi(arg); err == nil {
		return n - 1
	}
	return -1
}
