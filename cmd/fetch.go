package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mfe/internal/micropub"
	"github.com/Tiliavir/mfe/internal/output"
)

var (
	fetchEndpoint string
	fetchFormat   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <post-url>",
	Short: "Fetch a post's source from the Micropub endpoint and decode it",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchEndpoint, "endpoint", "", "Micropub endpoint (default from config)")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "", "Output format: text, json, yaml, toml (default from config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	base, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	endpoint := fetchEndpoint
	if endpoint == "" {
		endpoint = cfg.Micropub.Endpoint
	}
	if endpoint == "" {
		return fmt.Errorf("no micropub endpoint configured; set micropub.endpoint in %s or pass --endpoint", base)
	}

	tok, err := micropub.ResolveToken(base, cfg.Micropub.Token)
	if err != nil {
		return err
	}
	if tok == nil {
		logger.Debug("no micropub token, sending unauthenticated request")
	}

	ctx := cmd.Context()
	client := micropub.NewClient(ctx, endpoint, tok, logger)
	entry, err := client.Source(ctx, args[0])
	if err != nil {
		return err
	}

	format := fetchFormat
	if format == "" {
		format = cfg.Output.Format
	}
	return newRenderer(format).Render(cmd.OutOrStdout(), output.FromEntry(entry))
}
