package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/lineup/internal/config"
)

// NewRootCmd creates the root command for lineup.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineup",
		Short: "Browse a federated wiki as a lineup of pages",
		Long: `lineup is a client for federated wikis.

Pages are shown side by side as a lineup. Following a link replaces every
page to the right of the one holding the link, and the lineup is encoded
into a fragment that can be shared and reopened:

  welcome-visitors/recent-changes@fed.wiki.org

Links are looked up on the local origin first, then on the site the page
came from, then on the sites recorded in the page's journal, newest first.
A page found nowhere is shown as a ghost page.

Reaching .onion wikis requires --tor (embedded Tor daemon) or --proxy.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.String("origin", config.DefaultOrigin, "Base URL of the local wiki origin")
	flags.DurationP("timeout", "t", config.DefaultTimeout, "Timeout for each page probe")
	flags.StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current, XDG config or home directory)")
	flags.Bool("tor", false, "Start an embedded Tor daemon and route requests through it")
	flags.String("proxy", "", "SOCKS5 proxy address for all requests (e.g. 127.0.0.1:9050)")

	cmd.AddCommand(NewBrowseCmd())
	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewFragmentCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig creates a Config from defaults, the configuration file, and
// the flags the user set explicitly, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path that does not exist is an error; a missing default
	// file is not.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg.ApplyFile(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("origin") {
		if cfg.Origin, err = flags.GetString("origin"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if cfg.UseEmbeddedTor, err = flags.GetBool("tor"); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
