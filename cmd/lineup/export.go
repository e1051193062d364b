package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/lineup/internal/export"
	"github.com/nao1215/lineup/internal/log"
	"github.com/nao1215/lineup/internal/render"
)

// errConflictingFormats is returned when both --json and --markdown are set.
var errConflictingFormats = errors.New("--json and --markdown are mutually exclusive")

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [fragment]",
		Short: "Load a lineup and write it as text, Markdown, or JSON",
		Long: `Export fetches every page of the lineup described by fragment and writes
the rendered pages in order. Without a fragment the default page is
exported. Pages that cannot be loaded are listed with a warning.

Examples:
  # Print the lineup as plain text
  lineup export 'welcome-visitors/recent-changes@fed.wiki.org'

  # Write a Markdown document
  lineup export --markdown -o lineup.md 'welcome-visitors/how-to-wiki'

  # JSON for other tools
  lineup export --json 'welcome-visitors' | jq '.panels[].title'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write to the specified file path (creates directories if needed)")
	cmd.Flags().Bool("links", false, "List the links of each paragraph in text output")

	return cmd
}

// exportOptions are the output settings of the export command.
type exportOptions struct {
	json     bool
	markdown bool
	links    bool
	output   string
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	opts, err := exportFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	ctx, stop := signalContext(cmd)
	defer stop()

	s, err := newSession(ctx, cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	var fragment string
	if len(args) > 0 {
		fragment = fragmentArg(args[0])
	}
	l, err := s.loadLineup(ctx, fragment)
	if err != nil {
		return err
	}

	registry := render.DefaultRegistry(render.WithPlain(), render.WithLogger(logger))
	doc := export.NewDocument(l.Panels(), l.Fragment(), cfg.Origin, registry, time.Now())
	logger.Debug("lineup exported", "fragment", doc.Fragment, "panels", len(doc.Panels))

	return writeDocument(cmd.OutOrStdout(), opts, doc)
}

func exportFlags(cmd *cobra.Command) (exportOptions, error) {
	var (
		opts exportOptions
		err  error
	)
	flags := cmd.Flags()
	if opts.json, err = flags.GetBool("json"); err != nil {
		return opts, err
	}
	if opts.markdown, err = flags.GetBool("markdown"); err != nil {
		return opts, err
	}
	if opts.links, err = flags.GetBool("links"); err != nil {
		return opts, err
	}
	if opts.output, err = flags.GetString("output"); err != nil {
		return opts, err
	}
	if opts.json && opts.markdown {
		return opts, errConflictingFormats
	}
	return opts, nil
}

// writeDocument writes doc in the requested format to opts.output, or to
// stdout when no file is given.
func writeDocument(stdout io.Writer, opts exportOptions, doc *export.Document) error {
	output := stdout
	if opts.output != "" {
		dir := filepath.Dir(opts.output)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		// Pages behind per-site headers may be private.
		f, err := os.OpenFile(opts.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer export.Writer
	switch {
	case opts.json:
		writer = export.NewJSONWriter(output, export.WithPrettyPrint())
	case opts.markdown:
		writer = export.NewMarkdownWriter(output)
	default:
		writer = export.NewSimpleWriter(output, export.WithLinks(opts.links))
	}

	if _, err := writer.Write(doc); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
