package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nao1215/lineup/internal/lineup"
	"github.com/nao1215/lineup/internal/model"
)

// NewFragmentCmd creates the fragment command and its decode and encode
// subcommands. Neither touches the network.
func NewFragmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fragment",
		Short: "Decode and encode lineup fragments",
		Long: `Fragment converts between lineup fragments and page references.

A fragment is a "/"-separated list of tokens. A bare token is a page slug
on the local origin; "slug@site" is a page on another site.`,
	}

	cmd.AddCommand(newFragmentDecodeCmd())
	cmd.AddCommand(newFragmentEncodeCmd())

	return cmd
}

func newFragmentDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <fragment>",
		Short: "List the pages of a fragment",
		Long: `Decode prints one line per page of the fragment. Malformed tokens are
skipped. An empty fragment decodes to nothing.

Examples:
  lineup fragment decode '#/welcome-visitors/recent-changes@fed.wiki.org/'
  lineup fragment decode --json 'a/b@view'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			refs := lineup.Decode(fragmentArg(args[0]))
			if asJSON {
				if refs == nil {
					refs = []lineup.Ref{}
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(refs)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tSLUG\tSOURCE")
			for i, ref := range refs {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, ref.Slug, ref.Source)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	return cmd
}

func newFragmentEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <title[@site]>...",
		Short: "Build a fragment from page titles",
		Long: `Encode builds a fragment from page titles. Each title is converted to its
slug; append "@site" to place the page on another site.

Examples:
  lineup fragment encode "Welcome Visitors" "Recent Changes@fed.wiki.org"
  # #welcome-visitors/recent-changes@fed.wiki.org`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := make([]lineup.Ref, 0, len(args))
			for _, arg := range args {
				ref, err := parseTitleRef(arg)
				if err != nil {
					return err
				}
				refs = append(refs, ref)
			}
			fmt.Fprintln(cmd.OutOrStdout(), lineup.Encode(refs))
			return nil
		},
	}
}

// parseTitleRef parses "Title" or "Title@site".
func parseTitleRef(arg string) (lineup.Ref, error) {
	title, site := arg, ""
	if i := strings.LastIndex(arg, "@"); i >= 0 {
		title, site = arg[:i], arg[i+1:]
	}
	slug := model.Slug(title)
	if slug == "" {
		return lineup.Ref{}, fmt.Errorf("no page title in %q", arg)
	}
	source := model.ParseSource(site)
	if source == model.SourceGhost {
		return lineup.Ref{}, fmt.Errorf("ghost pages cannot be encoded: %q", arg)
	}
	return lineup.Ref{Source: source, Slug: slug}, nil
}
