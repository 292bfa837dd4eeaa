package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/mfe/internal/mf2"
	"github.com/Tiliavir/mfe/internal/output"
)

var (
	decodeFormat     string
	decodeStandalone bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode one mf2 JSON document (stdin when no file is given)",
	Long: `Decode an mf2 item such as {"type": "h-entry", "properties": {...}}.

Items whose type is not h-entry decode as unknown. With --standalone the
document is decoded as a bare entry, whose type may also be an array.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeFormat, "format", "", "Output format: text, json, yaml, toml (default from config)")
	decodeCmd.Flags().BoolVar(&decodeStandalone, "standalone", false, "Decode as a standalone entry instead of a tagged item")
}

func runDecode(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := inputPath(args)
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	rec, err := decodeRecord(data, decodeStandalone)
	if err != nil {
		return err
	}
	logger.Debug("decoded", "input", path, "type", rec.Type)

	format := decodeFormat
	if format == "" {
		format = cfg.Output.Format
	}
	return newRenderer(format).Render(cmd.OutOrStdout(), rec)
}

// decodeRecord decodes data as a tagged item, or as a standalone entry.
func decodeRecord(data []byte, standalone bool) (output.Record, error) {
	if standalone {
		e, err := mf2.ParseEntry(data)
		if err != nil {
			return output.Record{}, err
		}
		return output.FromEntry(e), nil
	}
	it, err := mf2.ParseItem(data)
	if err != nil {
		return output.Record{}, err
	}
	return output.FromItem(it), nil
}

func newRenderer(format string) output.Renderer {
	return output.Renderer{Format: format, Color: !color.NoColor}
}
