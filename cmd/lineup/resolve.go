package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/lineup/internal/lineup"
	"github.com/nao1215/lineup/internal/log"
	"github.com/nao1215/lineup/internal/model"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Resolve a link title against a lineup",
		Long: `Resolve loads the lineup described by --from, follows a link to title from
one of its pages, and prints the page the link resolved to together with
the new fragment.

The link is looked up on the local origin, then on the site of the page
holding the link, then on the sites in that page's journal, newest first.
If no site has the page, a ghost page is reported and the fragment is left
without it.

Examples:
  # Follow "Recent Changes" from the default page
  lineup resolve "Recent Changes"

  # Follow a link from the second page of a lineup
  lineup resolve "How To Wiki" --from 'welcome-visitors/about@fed.wiki.org' --panel 1

  # Keep the pages to the right of the link
  lineup resolve "How To Wiki" --from 'a/b/c' --panel 1 --branch`,
		Args: cobra.ExactArgs(1),
		RunE: runResolveCmd,
	}

	cmd.Flags().StringP("from", "f", "", "Fragment of the lineup holding the link (default: the default page)")
	cmd.Flags().IntP("panel", "p", -1, "Index of the page holding the link, counted from 0 (default: the last page)")
	cmd.Flags().BoolP("branch", "b", false, "Keep the pages to the right of the link")
	cmd.Flags().BoolP("json", "j", false, "Output the result as JSON")

	return cmd
}

// resolveOutput is the JSON shape printed by resolve --json.
type resolveOutput struct {
	Title    string       `json:"title"`
	Source   model.Source `json:"source"`
	Slug     string       `json:"slug"`
	Address  string       `json:"address,omitempty"`
	Ghost    bool         `json:"ghost"`
	Fragment string       `json:"fragment"`
}

// runResolveCmd executes the resolve command.
func runResolveCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	from, err := flags.GetString("from")
	if err != nil {
		return err
	}
	index, err := flags.GetInt("panel")
	if err != nil {
		return err
	}
	branch, err := flags.GetBool("branch")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}

	title := strings.TrimSpace(args[0])
	if title == "" {
		return errors.New("title must not be empty")
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	ctx, stop := signalContext(cmd)
	defer stop()

	s, err := newSession(ctx, cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := s.loadLineup(ctx, fragmentArg(from))
	if err != nil {
		return err
	}

	panels := l.Panels()
	if len(panels) == 0 {
		return fmt.Errorf("lineup %q has no pages", from)
	}
	if index < 0 {
		index = len(panels) - 1
	}
	if index >= len(panels) {
		return fmt.Errorf("panel %d out of range: lineup has %d pages", index, len(panels))
	}

	d := lineup.NewDispatcher(l, s.resolver, lineup.WithDispatcherLogger(logger))
	result, err := d.Dispatch(ctx, lineup.LinkActivated{
		Title:   title,
		PanelID: panels[index].ID,
		Branch:  branch,
	})
	if err != nil {
		return err
	}

	out := resolveOutput{
		Title:    result.Panel.Title(),
		Source:   result.Panel.Source,
		Slug:     result.Panel.Slug,
		Address:  result.Panel.Address,
		Ghost:    result.Panel.IsGhost(),
		Fragment: result.Fragment,
	}
	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
	writeResolveText(cmd.OutOrStdout(), out)
	return nil
}

func writeResolveText(w io.Writer, out resolveOutput) {
	fmt.Fprintf(w, "Title:    %s\n", out.Title)
	if out.Ghost {
		fmt.Fprintf(w, "Source:   %s (not found in the expected context)\n", out.Source)
	} else {
		fmt.Fprintf(w, "Source:   %s\n", out.Source)
		fmt.Fprintf(w, "Address:  %s\n", out.Address)
	}
	fmt.Fprintf(w, "Fragment: %s\n", out.Fragment)
}
