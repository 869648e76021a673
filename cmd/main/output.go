package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/user/waql-tui/pkg/models"
)

// maxCellWidth keeps wide property values from wrapping the terminal
const maxCellWidth = 60

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// printResultTable writes rs as aligned columns
func printResultTable(w io.Writer, rs *models.ResultSet) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if rs == nil {
		return
	}
	header := make([]string, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = strings.ToUpper(col)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i := 0; i < rs.Len(); i++ {
		record := rs.Record(i)
		for j := range record {
			record[j] = cell(record[j])
		}
		fmt.Fprintln(tw, strings.Join(record, "\t"))
	}
}

// cell flattens a value onto one line and truncates it
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "-"
	}
	r := []rune(s)
	if len(r) > maxCellWidth {
		return string(r[:maxCellWidth-3]) + "..."
	}
	return s
}

// firstLine is used for one-line listings of multi-line queries
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return cell(s[:i]) + " ..."
	}
	return cell(s)
}
