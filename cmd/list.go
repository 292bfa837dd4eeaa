package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mfe/internal/output"
)

var (
	listFormat     string
	listStandalone bool
)

var listCmd = &cobra.Command{
	Use:   "list <file>...",
	Short: "Decode several mf2 JSON files and list them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, csv")
	listCmd.Flags().BoolVar(&listStandalone, "standalone", false, "Decode files as standalone entries")
}

var listHeader = []string{"file", "type", "title", "categories", "error"}

// listRow decodes one file into a row. A decode failure goes into the error
// column and is reported through ok.
func listRow(path string, standalone bool, sep string) (row []string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{path, "", "", "", err.Error()}, false
	}
	rec, err := decodeRecord(data, standalone)
	if err != nil {
		return []string{path, "", "", "", err.Error()}, false
	}
	return []string{path, rec.Type, rec.Title, strings.Join(rec.Categories, sep), ""}, true
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	switch listFormat {
	case output.FormatCSV:
		fmt.Fprintln(out, output.CSVRow(listHeader...))
		for _, path := range args {
			row, ok := listRow(path, listStandalone, ";")
			if !ok {
				failed++
			}
			fmt.Fprintln(out, output.CSVRow(row...))
		}
	case "table":
		tbl := output.NewTable(out, listHeader)
		for _, path := range args {
			row, ok := listRow(path, listStandalone, ", ")
			if !ok {
				failed++
			}
			tbl.AddRow(row)
		}
		if err := tbl.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	default:
		return fmt.Errorf("unsupported list format: %s", listFormat)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(args))
	}
	return nil
}
