package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goliatone/go-cms-site/cmd/site/internal/bootstrap"
	sitecmd "github.com/goliatone/go-cms-site/internal/commands/site"
	"github.com/spf13/cobra"
)

func newBuildCommand(mf *moduleFlags) *cobra.Command {
	var (
		outputDir string
		workers   int
		dryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page to static HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := mf.options()
			opts.OutputDir = outputDir
			opts.Workers = workers
			module, err := moduleBuilder(opts)
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

			out := cmd.OutOrStdout()
			msg := sitecmd.BuildSiteCommand{
				OutputDir: outputDir,
				Locales:   bootstrap.SplitLocales(mf.locales),
				Workers:   workers,
				DryRun:    dryRun,
				ResultCallback: func(env sitecmd.ResultEnvelope) {
					if env.Build == nil {
						return
					}
					var total uint64
					for _, page := range env.Build.Rendered {
						total += uint64(page.Bytes)
					}
					fmt.Fprintf(out, "built %s (%s) in %s\n",
						pluralPages(env.Build.Pages), humanize.Bytes(total), env.Build.Duration.Round(time.Millisecond))
				},
			}
			if err := module.Commands().Build.Execute(ctx, msg); err != nil {
				return fmt.Errorf("execute build command: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", "dist", "Directory receiving the generated HTML")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent page renders (0 selects a default)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render pages without writing files")
	return cmd
}
