// Package cli implements the bmconv command surface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version is the user-visible tool version.
const Version = "2.0"

// RootOptions holds the flags shared by the whole command.
type RootOptions struct {
	From      string
	To        string
	Verbose   bool
	AssumeYes bool // skip the overwrite prompt
}

// InputFormats and OutputFormats list the accepted --from and --to values.
var (
	InputFormats  = []string{"chrome", "json", "sqlite"}
	OutputFormats = []string{"json", "sqlite"}
)

// NewRootCommand builds the bmconv command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "bmconv --from <format> --to <format> <source> <destination>",
		Short:   "File converter for bookmark manager databases",
		Version: Version,
		Long: `bmconv converts bookmark collections between storage formats.

Sources: chrome (a browser's JSON export), json (neutral tree file),
sqlite (bookmark database). Destinations: json, sqlite.

Example:
  bmconv --from chrome --to sqlite Bookmarks bookmarks.sqlite3
  bmconv --from sqlite --to json bookmarks.sqlite3 tree.json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !contains(InputFormats, opts.From) {
				return fmt.Errorf("invalid source format %q: must be one of %v", opts.From, InputFormats)
			}
			if !contains(OutputFormats, opts.To) {
				return fmt.Errorf("invalid destination format %q: must be one of %v", opts.To, OutputFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.Verbose)
			return Convert(cmd.Context(), opts, args[0], args[1], cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "source format (chrome|json|sqlite)")
	cmd.Flags().StringVar(&opts.To, "to", "", "destination format (json|sqlite)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVarP(&opts.AssumeYes, "yes", "y", false, "overwrite the destination without asking")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// setupLogging configures the process logger from the verbose flag.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
