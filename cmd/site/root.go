package main

import (
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/goliatone/go-cms-site/cmd/site/internal/bootstrap"
	"github.com/spf13/cobra"
)

var moduleBuilder = bootstrap.BuildModule

// moduleFlags are shared by the subcommands that bootstrap a site module.
type moduleFlags struct {
	dataDir  string
	locales  string
	strict   bool
	siteName string
	dialect  string
	dsn      string
	logLevel string
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "site",
		Short: "Render CMS page documents as static HTML",
		Long: `site reads CMS page documents laid out as {locale}/{slug}.{yml,yaml,json,md},
prints their table of contents, renders them to HTML and builds a static site.`,
		SilenceUsage: true,
	}

	mf := &moduleFlags{}
	flags := root.PersistentFlags()
	flags.StringVar(&mf.dataDir, "data-dir", "_data", "Directory holding {locale}/{slug} page documents")
	flags.StringVar(&mf.locales, "locales", "", "Comma separated list of locales (defaults to every locale directory)")
	flags.BoolVar(&mf.strict, "strict", false, "Fail on schema issues instead of reporting them")
	flags.StringVar(&mf.siteName, "site-name", "", "Name appended to document titles")
	flags.StringVar(&mf.dialect, "db-dialect", "sqlite", "Database dialect used with --dsn (sqlite or postgres)")
	flags.StringVar(&mf.dsn, "dsn", "", "Database DSN; pages are kept in memory when empty")
	flags.StringVar(&mf.logLevel, "log-level", "", "Enable logging at this level")

	root.AddCommand(
		newTOCCommand(),
		newRenderCommand(mf),
		newImportCommand(mf),
		newBuildCommand(mf),
	)
	return root
}

func (f *moduleFlags) options() bootstrap.Options {
	return bootstrap.Options{
		DataDir:        f.dataDir,
		Locales:        bootstrap.SplitLocales(f.locales),
		Strict:         f.strict,
		SiteName:       f.siteName,
		StorageDialect: f.dialect,
		StorageDSN:     f.dsn,
		LogLevel:       f.logLevel,
	}
}

// persistent reports whether pages outlive the process. In-memory runs
// import the data directory before rendering.
func (f *moduleFlags) persistent() bool {
	return f.dsn != ""
}

func pluralPages(n int) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, "page", "")
}
