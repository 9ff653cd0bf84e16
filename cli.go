package main

import (
	"errors"

	"github.com/spf13/cobra"

	"find-text/app"
	"find-text/config"
	"find-text/search"
)

var version = "0.3"

type cliFlags struct {
	text        string
	pattern     string
	workers     int
	context     int
	useRegex    bool
	verbose     bool
	binary      bool
	skipHidden  bool
	interactive bool
}

func rootCommand() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "find-text [flags] [paths...]",
		Short: "Concurrent text search with context windows",
		Long: `find-text searches every file matching the given filename patterns under
one or more paths, returning matched lines together with surrounding context.
PDF and other document formats are searched through text extraction.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.text == "" {
				return errors.New("search text (-t/--text) is required")
			}

			cfg := search.SearchConfig{
				Paths:        args,
				Patterns:     config.SplitPatterns(flags.pattern),
				Query:        flags.text,
				UseRegex:     flags.useRegex,
				ContextLines: flags.context,
				NumWorkers:   flags.workers,
				SearchBinary: flags.binary,
				SkipHidden:   flags.skipHidden,
				Verbose:      flags.verbose,
			}

			if flags.interactive {
				return app.RunTUI(cfg)
			}
			return app.RunCLI(cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.text, "text", "t", "", "text to search for")
	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", config.DefaultPattern,
		"file pattern(s) to search in, comma-separated (e.g. \"*.txt,*.md\")")
	cmd.Flags().IntVarP(&flags.workers, "jobs", "j", 0,
		"number of worker threads (0 = one per CPU core)")
	cmd.Flags().IntVarP(&flags.context, "context", "c", config.DefaultContextLines,
		"number of context lines before and after matches")
	cmd.Flags().BoolVarP(&flags.useRegex, "regex", "r", false,
		"interpret the search text as a regular expression")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"show per-file error diagnostics on stderr")
	cmd.Flags().BoolVar(&flags.binary, "binary", false,
		"search binary files instead of skipping them")
	cmd.Flags().BoolVar(&flags.skipHidden, "skip-hidden", false,
		"skip hidden files and well-known generated directories")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false,
		"browse results interactively")

	return cmd
}
