package main

import (
	"fmt"

	"github.com/goliatone/go-cms-site/cmd/site/internal/bootstrap"
	sitecmd "github.com/goliatone/go-cms-site/internal/commands/site"
	"github.com/spf13/cobra"
)

func newImportCommand(mf *moduleFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the data directory into page storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := moduleBuilder(mf.options())
			if err != nil {
				return fmt.Errorf("bootstrap module: %w", err)
			}
			defer module.Close()

			out := cmd.OutOrStdout()
			msg := sitecmd.ImportPagesCommand{
				Directory: ".",
				Locales:   bootstrap.SplitLocales(mf.locales),
				Strict:    mf.strict,
				ResultCallback: func(env sitecmd.ResultEnvelope) {
					if env.Import == nil {
						return
					}
					fmt.Fprintf(out, "imported %s (%d warnings, %d failed)\n",
						pluralPages(env.Import.Imported), len(env.Import.Warnings), len(env.Import.Failed))
					for _, issue := range env.Import.Warnings {
						fmt.Fprintf(out, "  warning: %s\n", issue)
					}
				},
			}
			if err := module.Commands().Import.Execute(cmd.Context(), msg); err != nil {
				return fmt.Errorf("execute import command: %w", err)
			}
			return nil
		},
	}
}
