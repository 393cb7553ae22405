package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/roach88/bmconv/internal/bridge"
	"github.com/roach88/bmconv/internal/chrome"
	"github.com/roach88/bmconv/internal/jsontree"
	"github.com/roach88/bmconv/internal/store"
)

// Convert routes one source/destination pair through the format bridge.
// An existing destination triggers an interactive overwrite prompt on in;
// declining aborts with exit code 1 and leaves the destination untouched.
func Convert(ctx context.Context, opts *RootOptions, source, destination string, in io.Reader, prompt io.Writer) error {
	slog.Info("reading source", "format", opts.From, "path", source)
	tree, err := load(ctx, opts.From, source)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read source", err)
	}

	// The destination is only touched once the source decoded cleanly.
	if _, err := os.Stat(destination); err == nil {
		if !opts.AssumeYes {
			ok, err := confirmOverwrite(in, prompt, destination)
			if err != nil {
				return WrapExitError(ExitFailure, "overwrite prompt failed", err)
			}
			if !ok {
				return NewExitError(ExitFailure, "conversion cancelled: destination not overwritten")
			}
		}
		slog.Info("replacing destination", "path", destination)
		if err := os.Remove(destination); err != nil {
			return WrapExitError(ExitFailure, "failed to replace destination", err)
		}
	}

	slog.Info("writing destination", "format", opts.To, "path", destination)
	if err := write(ctx, opts.To, destination, tree); err != nil {
		return WrapExitError(ExitFailure, "failed to write destination", err)
	}

	slog.Info("conversion complete", "source", source, "destination", destination)
	return nil
}

// load decodes the source into the neutral nested tree form.
func load(ctx context.Context, format, source string) (*bridge.TreeNode, error) {
	switch format {
	case "chrome":
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return chrome.Decode(f)
	case "json":
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return jsontree.Read(f)
	case "sqlite":
		st, err := store.Open(source)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return bridge.Export(ctx, st)
	}
	return nil, fmt.Errorf("unsupported source format %q", format)
}

// write lands the tree at the destination. A sqlite destination goes
// through the bridge so names are deduplicated against the fresh store; a
// json destination gets an in-memory dedup pass instead.
func write(ctx context.Context, format, destination string, tree *bridge.TreeNode) error {
	switch format {
	case "json":
		bridge.Dedupe(tree)
		f, err := os.Create(destination)
		if err != nil {
			return err
		}
		defer f.Close()
		return jsontree.Write(f, tree)
	case "sqlite":
		st, err := store.Create(destination)
		if err != nil {
			return err
		}
		defer st.Close()
		return bridge.Import(ctx, st, tree)
	}
	return fmt.Errorf("unsupported destination format %q", format)
}

// confirmOverwrite asks before clobbering destination. Anything but y or
// yes declines.
func confirmOverwrite(in io.Reader, out io.Writer, destination string) (bool, error) {
	fmt.Fprintf(out, "%s already exists. Overwrite? [y/N]: ", destination)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
