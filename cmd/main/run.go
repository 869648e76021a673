package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/waql-tui/pkg/export"
	"github.com/user/waql-tui/pkg/query"
)

var (
	runCSVPath string
	runJSON    bool
	runRaw     bool
	runSaved   bool
)

var runCmd = &cobra.Command{
	Use:   "run [waql]",
	Short: "Run a WAQL query and print the result",
	Long: `Run a WAQL query once and print the returned objects.

Output is an aligned table on a terminal and CSV otherwise. Pass "-" or no
argument to read the query from stdin. Append "| prop1 prop2" to choose the
returned properties.`,
	Example: `  waql-tui run '$ from type Sound'
  waql-tui run '$ from type Bus | name path' --json
  waql-tui run --saved sounds --csv sounds.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := queryText(cmd, args)
		if err != nil {
			return err
		}
		_, executor := newExecutor(cliLogger())
		return runQuery(cmd.Context(), executor, text, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the connected Wwise instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newExecutor(cliLogger())
		ctx, cancel := context.WithTimeout(contextOf(cmd), cfg.Timeout())
		defer cancel()

		info, err := client.GetInfo(ctx)
		if err != nil {
			return errors.New(query.Describe(query.ClassifyCallError(err)))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Wwise:   %s\n", info.DisplayName)
		fmt.Fprintf(out, "Version: %s\n", info.Version)
		fmt.Fprintf(out, "PID:     %d\n", info.ProcessID)
		fmt.Fprintf(out, "WAAPI:   %s\n", client.URL())
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runCSVPath, "csv", "", "write the result to a CSV file")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the result as JSON")
	runCmd.Flags().BoolVar(&runRaw, "raw", false, "print the raw WAAPI response")
	runCmd.Flags().BoolVar(&runSaved, "saved", false, "treat the argument as a saved query name or id")
	runCmd.MarkFlagsMutuallyExclusive("csv", "json", "raw")
}

// queryText resolves the query from args, stdin or the saved list
func queryText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		if runSaved {
			return "", errors.New("--saved needs a query name")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	if !runSaved {
		return args[0], nil
	}

	settings, err := loadSettings()
	if err != nil {
		return "", err
	}
	i, ok := settings.FindSavedQuery(args[0])
	if !ok {
		return "", fmt.Errorf("no saved query %q", args[0])
	}
	return settings.SavedQueries[i].Query, nil
}

// runQuery executes text and writes it in the format the flags select
func runQuery(ctx context.Context, executor *query.Executor, text string, out, errOut io.Writer) error {
	resp, err := executor.Execute(contextOr(ctx), query.ExecuteRequest{Query: text})
	if errors.Is(err, query.ErrEmptyResult) {
		fmt.Fprintln(errOut, query.Describe(err))
		return nil
	}
	if err != nil {
		return errors.New(query.Describe(err))
	}

	switch {
	case runCSVPath != "":
		if err := export.NewExporter().ExportToCSV(resp.Result, runCSVPath); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(errOut, "Wrote %d rows to %s\n", resp.Count, runCSVPath)
	case runJSON:
		data, err := export.MarshalJSON(resp.Result, true)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case runRaw:
		fmt.Fprintln(out, strings.TrimSpace(resp.RawJSON))
	case isTerminal(out):
		printResultTable(out, resp.Result)
		fmt.Fprintf(out, "\n%d objects in %s\n", resp.Count, resp.Duration.Round(time.Millisecond))
	default:
		return export.WriteCSV(out, resp.Result)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	return contextOr(cmd.Context())
}

func contextOr(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
