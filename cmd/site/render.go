package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRenderCommand(mf *moduleFlags) *cobra.Command {
	var locale, slug string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one page as an HTML document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(slug) == "" {
				return errors.New("render requires --slug")
			}
			module, err := moduleBuilder(mf.options())
			if err != nil {
				return fmt.Errorf("bootstrap module: %w", err)
			}
			defer module.Close()

			ctx := cmd.Context()
			if !mf.persistent() {
				if _, err := module.Import(ctx); err != nil {
					return fmt.Errorf("import pages: %w", err)
				}
			}
			return module.RenderPage(ctx, cmd.OutOrStdout(), locale, slug)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "en", "Locale of the page to render")
	cmd.Flags().StringVar(&slug, "slug", "", "Slug of the page to render")
	return cmd
}
