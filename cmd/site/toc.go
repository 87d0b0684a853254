package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-cms-site/internal/cmsdata"
	"github.com/goliatone/go-cms-site/internal/toc"
	"github.com/spf13/cobra"
)

func newTOCCommand() *cobra.Command {
	var (
		level     int
		collation string
	)
	cmd := &cobra.Command{
		Use:   "toc <document>",
		Short: "Print the table of contents of a page document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			req, _, err := cmsdata.ParseDocument(filepath.Base(args[0]), data)
			if err != nil {
				return err
			}

			extractor := toc.New(toc.WithLocale(collation))
			out := cmd.OutOrStdout()
			for _, entry := range toc.Outline(extractor.Extract(req.Blocks, level)) {
				indent := strings.Repeat("  ", max(entry.Level-level, 0))
				fmt.Fprintf(out, "%s%s #%s\n", indent, entry.Title, entry.Anchor)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&level, "level", 1, "Level assigned to top-level headings")
	cmd.Flags().StringVar(&collation, "collation", "en", "Locale used to order ordered_block items")
	return cmd
}
