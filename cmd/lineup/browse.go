package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/lineup/internal/config"
	"github.com/nao1215/lineup/internal/lineup"
	"github.com/nao1215/lineup/internal/log"
	"github.com/nao1215/lineup/internal/render"
	"github.com/nao1215/lineup/internal/tui"
)

// defaultLogFile is the log file name under the XDG state directory.
const defaultLogFile = "lineup.log"

// NewBrowseCmd creates the browse command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [fragment]",
		Short: "Open a lineup in the interactive browser",
		Long: `Browse opens the lineup described by fragment in a full screen terminal
browser. Without a fragment the default page is shown.

Keys:
  ←/h →/l     focus previous/next page
  tab         select next link, shift+tab previous link
  enter       follow the selected link, dropping pages to the right
  b           follow the selected link as a new branch
  o           open the selected external link in the system browser
  y           copy the fragment to the clipboard
  [ ]         back and forward through the lineup history
  r           reload all pages
  q           quit

The screen is used by the browser, so logs are written to a file
(default: $XDG_STATE_HOME/lineup/lineup.log).

Examples:
  # Start at the default page of the local origin
  lineup browse

  # Reopen a shared lineup
  lineup browse 'welcome-visitors/how-to-wiki@fed.wiki.org'

  # Paste a full wiki URL
  lineup browse 'http://localhost:3000/#/welcome-visitors/recent-changes'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrowseCmd,
	}

	cmd.Flags().String("log-file", "",
		"Write logs to this file instead of the XDG state directory")

	return cmd
}

// runBrowseCmd executes the browse command.
func runBrowseCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logPath, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return err
	}
	if logPath == "" {
		logPath = filepath.Join(config.XDGStateDir(), defaultLogFile)
	}
	logger, closer, err := log.NewFileLogger(logPath, cfg.Verbose)
	if err != nil {
		return err
	}
	defer closer.Close()

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

	d := lineup.NewDispatcher(s.newLineup(), s.resolver,
		lineup.WithHistory(lineup.NewHistory()),
		lineup.WithOpener(tui.BrowserOpener{}),
		lineup.WithDispatcherLogger(logger),
	)
	d.Navigate(fragment)
	logger.Info("browser started", "origin", cfg.Origin, "fragment", d.Lineup().Fragment())

	m := tui.New(tui.Options{
		Context:    ctx,
		Dispatcher: d,
		Prober:     s.prober,
		Registry:   render.DefaultRegistry(render.WithLogger(logger)),
		Clipboard:  tui.WriteClipboard,
	})
	if err := tui.Run(ctx, m); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), d.Lineup().Fragment())
	return nil
}
