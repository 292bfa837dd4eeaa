package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/mfe/internal/frontmatter"
	"github.com/Tiliavir/mfe/internal/mf2"
	"github.com/Tiliavir/mfe/internal/storage"
)

var (
	hugoOut         string
	hugoSlug        string
	hugoFrontMatter string
	hugoDryRun      bool
)

var hugoCmd = &cobra.Command{
	Use:   "hugo [file]",
	Short: "Convert an h-entry into a Hugo content file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHugo,
}

func init() {
	hugoCmd.Flags().StringVar(&hugoOut, "out", "", "Content directory (default from config)")
	hugoCmd.Flags().StringVar(&hugoSlug, "slug", "", "File name without extension (default derived from title or content)")
	hugoCmd.Flags().StringVar(&hugoFrontMatter, "front-matter", "", "Front matter format: toml, yaml (default from config)")
	hugoCmd.Flags().BoolVar(&hugoDryRun, "dry-run", false, "Print the file instead of writing it")
}

// slugWords bounds how much of the content is used for a derived slug.
const slugWords = 8

// deriveSlug picks a file name for props when none was given.
func deriveSlug(props mf2.EntryProps) string {
	if s := storage.Slugify(props.Title); s != "" {
		return s
	}
	words := strings.Fields(props.Content)
	if len(words) > slugWords {
		words = words[:slugWords]
	}
	return storage.Slugify(strings.Join(words, " "))
}

func runHugo(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := inputPath(args)
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	it, err := mf2.ParseItem(data)
	if err != nil {
		return err
	}
	if it.Kind != mf2.KindEntry {
		return fmt.Errorf("%s is not an h-entry (type %q)", path, it.Type)
	}

	format := hugoFrontMatter
	if format == "" {
		format = cfg.Hugo.FrontMatter
	}
	content, err := frontmatter.Build(*it.Entry, format)
	if err != nil {
		return err
	}

	if hugoDryRun {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	slug := hugoSlug
	if slug == "" {
		slug = deriveSlug(*it.Entry)
	}
	if slug == "" {
		return fmt.Errorf("cannot derive a slug from an entry without title or content; pass --slug")
	}
	dir := hugoOut
	if dir == "" {
		dir = cfg.Hugo.ContentDir
	}

	written, err := storage.SaveContent(dir, slug, content)
	if err != nil {
		return err
	}
	logger.Debug("content file written", "path", written, "bytes", len(content))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)
	return nil
}
