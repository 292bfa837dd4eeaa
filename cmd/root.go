package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mfe/internal/config"
	"github.com/Tiliavir/mfe/internal/storage"
)

var verbose bool

// logger is replaced in PersistentPreRunE once --verbose is known.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var rootCmd = &cobra.Command{
	Use:   "mfe",
	Short: "mfe – decode Microformats2 h-entry JSON",
	Long: `mfe reads Microformats2 (mf2) JSON documents describing h-entry posts and
decodes them into typed records. Properties serialized either as a bare string
or as a single-element array are accepted alike.

Configuration lives in ~/.mfe/config.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(hugoCmd)
}

// loadConfig resolves the data directory and reads the config file in it.
func loadConfig() (string, config.Config, error) {
	base, err := storage.BaseDir()
	if err != nil {
		return "", config.Config{}, err
	}
	cfg, err := config.Load(base)
	if err != nil {
		return "", config.Config{}, err
	}
	logger.Debug("config loaded", "path", config.FilePath(base), "format", cfg.Output.Format)
	return base, cfg, nil
}

// readInput reads path, or r when path is "-".
func readInput(r io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// inputPath returns the single optional file argument, defaulting to stdin.
func inputPath(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
